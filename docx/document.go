package docx

import "encoding/xml"

// XML namespaces used in DOCX files
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

// Page geometry in twips (A4, one-inch margins).
const (
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
	pageMarginTwips = 1440
)

// DefaultContentWidthTwips is the usable content width between margins.
const DefaultContentWidthTwips = pageWidthTwips - 2*pageMarginTwips

// indentUnitTwips is the fixed structural nesting unit applied to blocks
// following a level-2..6 heading.
const indentUnitTwips = 420

// twipsPerPixel converts between twips and pixels at 96 dpi.
const twipsPerPixel = 15

// emuPerPixel converts pixels to English Metric Units at 96 dpi.
const emuPerPixel = 9525

// documentXML is the root of word/document.xml, marshal direction.
type documentXML struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	NSWP    string   `xml:"xmlns:wp,attr"`
	NSA     string   `xml:"xmlns:a,attr"`
	NSPic   string   `xml:"xmlns:pic,attr"`
	Body    bodyXML  `xml:"w:body"`
}

// bodyXML holds the ordered block content followed by section properties.
// Content elements are paragraphXML or tableXML values; encoding/xml
// marshals each by its concrete type, preserving document order.
type bodyXML struct {
	Content []any
	SectPr  sectPrXML `xml:"w:sectPr"`
}

type sectPrXML struct {
	PageSize pageSizeXML `xml:"w:pgSz"`
	Margins  marginsXML  `xml:"w:pgMar"`
}

type pageSizeXML struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type marginsXML struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName xml.Name      `xml:"w:p"`
	Props   *paraPropsXML `xml:"w:pPr,omitempty"`
	Runs    []runXML
}

// paraPropsXML represents paragraph properties (<w:pPr>).
type paraPropsXML struct {
	Style   *valXML     `xml:"w:pStyle,omitempty"`
	NumPr   *numPrXML   `xml:"w:numPr,omitempty"`
	Borders *paraBdrXML `xml:"w:pBdr,omitempty"`
	Shading *shadingXML `xml:"w:shd,omitempty"`
	Indent  *indentXML  `xml:"w:ind,omitempty"`
}

// numPrXML binds a paragraph to a numbering definition and level.
type numPrXML struct {
	ILvl  valXML `xml:"w:ilvl"`
	NumID valXML `xml:"w:numId"`
}

// paraBdrXML carries the bottom border used for horizontal rules.
type paraBdrXML struct {
	Bottom borderXML `xml:"w:bottom"`
}

type indentXML struct {
	Left int `xml:"w:left,attr"`
}

type shadingXML struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr"`
	Fill  string `xml:"w:fill,attr"`
}

// valXML is the ubiquitous single-attribute wrapper (<w:x w:val="..."/>).
type valXML struct {
	Val string `xml:"w:val,attr"`
}

// emptyXML marshals as a bare toggle element such as <w:b/>.
type emptyXML struct{}

// runXML represents a text run (<w:r>). Content holds textXML, breakXML
// and drawingXML values in order.
type runXML struct {
	XMLName xml.Name     `xml:"w:r"`
	Props   *runPropsXML `xml:"w:rPr,omitempty"`
	Content []any
}

// runPropsXML represents run properties (<w:rPr>). Field order follows the
// schema's required child order.
type runPropsXML struct {
	Fonts   *fontsXML   `xml:"w:rFonts,omitempty"`
	Bold    *emptyXML   `xml:"w:b,omitempty"`
	Italic  *emptyXML   `xml:"w:i,omitempty"`
	Strike  *emptyXML   `xml:"w:strike,omitempty"`
	Color   *valXML     `xml:"w:color,omitempty"`
	Shading *shadingXML `xml:"w:shd,omitempty"`
}

type fontsXML struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

// textXML represents literal run text; space is always preserved.
type textXML struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr"`
	Text    string   `xml:",chardata"`
}

func newText(s string) textXML {
	return textXML{Space: "preserve", Text: s}
}

// breakXML represents a line or page break (<w:br>).
type breakXML struct {
	XMLName xml.Name `xml:"w:br"`
	Type    string   `xml:"w:type,attr,omitempty"`
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	XMLName xml.Name   `xml:"w:tbl"`
	Props   tblPrXML   `xml:"w:tblPr"`
	Grid    tblGridXML `xml:"w:tblGrid"`
	Rows    []tableRowXML
}

type tblPrXML struct {
	Width   tblWidthXML   `xml:"w:tblW"`
	Indent  *tblWidthXML  `xml:"w:tblInd,omitempty"`
	Borders tblBordersXML `xml:"w:tblBorders"`
}

type tblWidthXML struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type tblBordersXML struct {
	Top     borderXML `xml:"w:top"`
	Left    borderXML `xml:"w:left"`
	Bottom  borderXML `xml:"w:bottom"`
	Right   borderXML `xml:"w:right"`
	InsideH borderXML `xml:"w:insideH"`
	InsideV borderXML `xml:"w:insideV"`
}

type borderXML struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type tblGridXML struct {
	Cols []gridColXML `xml:"w:gridCol"`
}

type gridColXML struct {
	W int `xml:"w:w,attr"`
}

type tableRowXML struct {
	XMLName xml.Name `xml:"w:tr"`
	Cells   []tableCellXML
}

type tableCellXML struct {
	XMLName xml.Name     `xml:"w:tc"`
	Props   *tcPropsXML  `xml:"w:tcPr,omitempty"`
	Paras   []paragraphXML
}

type tcPropsXML struct {
	Width   *tblWidthXML `xml:"w:tcW,omitempty"`
	Shading *shadingXML  `xml:"w:shd,omitempty"`
}

// drawingXML and its descendants express an inline image. The structure is
// the minimal DrawingML tree Word accepts: extent in EMU, a picture with a
// relationship reference to the media part, and a rectangle geometry.
type drawingXML struct {
	XMLName xml.Name  `xml:"w:drawing"`
	Inline  inlineXML `xml:"wp:inline"`
}

type inlineXML struct {
	DistT   int        `xml:"distT,attr"`
	DistB   int        `xml:"distB,attr"`
	DistL   int        `xml:"distL,attr"`
	DistR   int        `xml:"distR,attr"`
	Extent  extentXML  `xml:"wp:extent"`
	DocPr   docPrXML   `xml:"wp:docPr"`
	Graphic graphicXML `xml:"a:graphic"`
}

type extentXML struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type docPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type graphicXML struct {
	Data graphicDataXML `xml:"a:graphicData"`
}

type graphicDataXML struct {
	URI string `xml:"uri,attr"`
	Pic picXML `xml:"pic:pic"`
}

type picXML struct {
	NvPicPr  nvPicPrXML  `xml:"pic:nvPicPr"`
	BlipFill blipFillXML `xml:"pic:blipFill"`
	SpPr     spPrXML     `xml:"pic:spPr"`
}

type nvPicPrXML struct {
	CNvPr    docPrXML `xml:"pic:cNvPr"`
	CNvPicPr emptyXML `xml:"pic:cNvPicPr"`
}

type blipFillXML struct {
	Blip    blipXML    `xml:"a:blip"`
	Stretch stretchXML `xml:"a:stretch"`
}

type blipXML struct {
	Embed string `xml:"r:embed,attr"`
}

type stretchXML struct {
	FillRect emptyXML `xml:"a:fillRect"`
}

type spPrXML struct {
	Xfrm     xfrmXML     `xml:"a:xfrm"`
	PrstGeom prstGeomXML `xml:"a:prstGeom"`
}

type xfrmXML struct {
	Off offXML    `xml:"a:off"`
	Ext extentXML `xml:"a:ext"`
}

type offXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type prstGeomXML struct {
	Prst  string   `xml:"prst,attr"`
	AvLst emptyXML `xml:"a:avLst"`
}
