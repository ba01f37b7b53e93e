package grd

import "github.com/colorwav3/gradkit/internal/descriptor"

// File header.
var tagSignature = descriptor.MakeTag("8BGR")

// Descriptor structure.
var (
	tagObjc = descriptor.MakeTag("Objc")
	tagVlLs = descriptor.MakeTag("VlLs")
	tagTEXT = descriptor.MakeTag("TEXT")
	tagDoub = descriptor.MakeTag("doub")
	tagLong = descriptor.MakeTag("long")
	tagEnum = descriptor.MakeTag("enum")
	tagUntF = descriptor.MakeTag("UntF")
	tagPrc  = descriptor.MakeTag("#Prc")
)

// Gradient fields.
var (
	tagGrdL = descriptor.MakeTag("GrdL")
	tagGrad = descriptor.MakeTag("Grad")
	tagGrdn = descriptor.MakeTag("Grdn")
	tagNm   = descriptor.MakeTag("Nm  ")
	tagGrdF = descriptor.MakeTag("GrdF")
	tagCstS = descriptor.MakeTag("CstS")
	tagIntr = descriptor.MakeTag("Intr")
	tagClrs = descriptor.MakeTag("Clrs")
	tagClrt = descriptor.MakeTag("Clrt")
	tagClr  = descriptor.MakeTag("Clr ")
	tagType = descriptor.MakeTag("Type")
	tagClry = descriptor.MakeTag("Clry")
	tagUsrS = descriptor.MakeTag("UsrS")
	tagLctn = descriptor.MakeTag("Lctn")
	tagMdpn = descriptor.MakeTag("Mdpn")
	tagTrns = descriptor.MakeTag("Trns")
	tagTrnS = descriptor.MakeTag("TrnS")
	tagOpct = descriptor.MakeTag("Opct")
)

// Colour models and their channel keys.
var (
	tagRGBC = descriptor.MakeTag("RGBC")
	tagRd   = descriptor.MakeTag("Rd  ")
	tagGrn  = descriptor.MakeTag("Grn ")
	tagBl   = descriptor.MakeTag("Bl  ")

	tagHSBC = descriptor.MakeTag("HSBC")
	tagHue  = descriptor.MakeTag("H   ")
	tagStrt = descriptor.MakeTag("Strt")
	tagBrgh = descriptor.MakeTag("Brgh")

	tagBkCl = descriptor.MakeTag("BkCl")

	tagCMYC = descriptor.MakeTag("CMYC")
	tagCyn  = descriptor.MakeTag("Cyn ")
	tagMgnt = descriptor.MakeTag("Mgnt")
	tagYlw  = descriptor.MakeTag("Ylw ")
	tagBlck = descriptor.MakeTag("Blck")

	tagGrsc = descriptor.MakeTag("Grsc")
	tagGry  = descriptor.MakeTag("Gry ")

	tagLbCl = descriptor.MakeTag("LbCl")
	tagLmnc = descriptor.MakeTag("Lmnc")
	tagLabA = descriptor.MakeTag("A   ")
	tagLabB = descriptor.MakeTag("B   ")
)

// Preset hierarchy classes.
const (
	classGroup    = "Grup"
	classGroupEnd = "groupEnd"
	classPreset   = "preset"
)
