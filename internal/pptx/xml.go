package pptx

import "encoding/xml"

// The structs below cover the subset of PresentationML and DrawingML the
// importer reads. Tags use local names unless a name is ambiguous, so any
// namespace prefix matches.

type presentation struct {
	SlideSize extent    `xml:"sldSz"`
	SlideIDs  []slideID `xml:"sldIdLst>sldId"`
}

// slideID also carries a plain id attribute, so the relationship id is
// matched by namespace.
type slideID struct {
	RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type relationships struct {
	Items []relationship `xml:"Relationship"`
}

type relationship struct {
	ID         string `xml:"Id,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type slide struct {
	Tree node `xml:"cSld>spTree"`
}

// node is any element of a shape tree. Which fields are populated depends
// on XMLName: sp, cxnSp, pic and grpSp are read, the rest ignored.
type node struct {
	XMLName  xml.Name
	SpPr     shapeProps `xml:"spPr"`
	GrpSpPr  shapeProps `xml:"grpSpPr"`
	TxBody   *textBody  `xml:"txBody"`
	BlipFill *blipFill  `xml:"blipFill"`
	Children []node     `xml:",any"`
}

type shapeProps struct {
	Xfrm      *transform   `xml:"xfrm"`
	PrstGeom  *geometry    `xml:"prstGeom"`
	SolidFill *colorChoice `xml:"solidFill"`
	NoFill    *struct{}    `xml:"noFill"`
	Ln        *outline     `xml:"ln"`
}

type geometry struct {
	Prst string `xml:"prst,attr"`
}

type outline struct {
	W         int64        `xml:"w,attr"`
	SolidFill *colorChoice `xml:"solidFill"`
	NoFill    *struct{}    `xml:"noFill"`
}

type transform struct {
	FlipH bool   `xml:"flipH,attr"`
	FlipV bool   `xml:"flipV,attr"`
	Off   point  `xml:"off"`
	Ext   extent `xml:"ext"`
	ChOff point  `xml:"chOff"`
	ChExt extent `xml:"chExt"`
}

type point struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type extent struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

// colorChoice is the body of a fill; one of its color elements is
// expected.
type colorChoice struct {
	SRGB   *colorValue `xml:"srgbClr"`
	Scheme *colorValue `xml:"schemeClr"`
	Preset *colorValue `xml:"prstClr"`
	System *colorValue `xml:"sysClr"`
}

type colorValue struct {
	Val     string    `xml:"val,attr"`
	LastClr string    `xml:"lastClr,attr"`
	Alpha   *intValue `xml:"alpha"`
}

type intValue struct {
	Val int `xml:"val,attr"`
}

type textBody struct {
	BodyPr     bodyProps   `xml:"bodyPr"`
	Paragraphs []paragraph `xml:"p"`
}

type bodyProps struct {
	LIns *int64 `xml:"lIns,attr"`
	TIns *int64 `xml:"tIns,attr"`
}

type paragraph struct {
	Runs     []textRun `xml:"r"`
	EndProps *runProps `xml:"endParaRPr"`
}

type textRun struct {
	Props *runProps `xml:"rPr"`
	Text  string    `xml:"t"`
}

type runProps struct {
	Size      int          `xml:"sz,attr"`
	SolidFill *colorChoice `xml:"solidFill"`
}

type blipFill struct {
	Blip blip `xml:"blip"`
}

type blip struct {
	Embed string `xml:"embed,attr"`
}
