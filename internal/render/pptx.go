package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumora-labs/coursecraft-api/internal/models"
)

// PresentationPPTXRenderer writes a slide deck as a minimal
// PresentationML package: presentation part, one master/layout pair and
// one slide part per content slide.
type PresentationPPTXRenderer struct{}

// NewPresentationPPTXRenderer constructs the presentation/pptx renderer.
func NewPresentationPPTXRenderer() *PresentationPPTXRenderer {
	return &PresentationPPTXRenderer{}
}

func (r *PresentationPPTXRenderer) Kind() models.MaterialKind   { return models.KindPresentation }
func (r *PresentationPPTXRenderer) Format() models.OutputFormat { return models.FormatPPTX }

const pptxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>
</Relationships>`

const pptxSlideMaster = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld>
  <p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
  <p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>
</p:sldMaster>`

const pptxSlideMasterRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
</Relationships>`

const pptxSlideLayout = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld>
</p:sldLayout>`

const pptxSlideLayoutRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>
</Relationships>`

const pptxSlideRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
</Relationships>`

func (r *PresentationPPTXRenderer) Render(ctx context.Context, c *Content, absPath string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	slides := c.Slides
	if len(slides) == 0 {
		// A bare deck still gets a title slide.
		slides = []Slide{{Title: c.Topic}}
	}

	parts := []ooxmlPart{
		{Name: "[Content_Types].xml", Data: pptxContentTypes(len(slides))},
		{Name: "_rels/.rels", Data: pptxRootRels},
		{Name: "ppt/presentation.xml", Data: pptxPresentation(len(slides))},
		{Name: "ppt/_rels/presentation.xml.rels", Data: pptxPresentationRels(len(slides))},
		{Name: "ppt/slideMasters/slideMaster1.xml", Data: pptxSlideMaster},
		{Name: "ppt/slideMasters/_rels/slideMaster1.xml.rels", Data: pptxSlideMasterRels},
		{Name: "ppt/slideLayouts/slideLayout1.xml", Data: pptxSlideLayout},
		{Name: "ppt/slideLayouts/_rels/slideLayout1.xml.rels", Data: pptxSlideLayoutRels},
	}

	for i, slide := range slides {
		n := i + 1
		parts = append(parts,
			ooxmlPart{Name: fmt.Sprintf("ppt/slides/slide%d.xml", n), Data: pptxSlide(slide)},
			ooxmlPart{Name: fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), Data: pptxSlideRels},
		)
	}

	return writeOOXMLPackage(absPath, parts)
}

func pptxContentTypes(slideCount int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
  <Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>
  <Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>
`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `  <Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>
`, i)
	}
	b.WriteString("</Types>")
	return b.String()
}

func pptxPresentation(slideCount int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>
  <p:sldIdLst>
`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `    <p:sldId id="%d" r:id="rId%d"/>
`, 255+i, i+1)
	}
	b.WriteString(`  </p:sldIdLst>
  <p:sldSz cx="12192000" cy="6858000"/>
  <p:notesSz cx="6858000" cy="9144000"/>
</p:presentation>`)
	return b.String()
}

func pptxPresentationRels(slideCount int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>
`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `  <Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>
`, i+1, i)
	}
	b.WriteString("</Relationships>")
	return b.String()
}

func pptxSlide(s Slide) string {
	var body strings.Builder

	// Title shape.
	fmt.Fprintf(&body, `      <p:sp>
        <p:nvSpPr><p:cNvPr id="2" name="Title"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
        <p:spPr><a:xfrm><a:off x="838200" y="365125"/><a:ext cx="10515600" cy="1325563"/></a:xfrm></p:spPr>
        <p:txBody><a:bodyPr/><a:p><a:r><a:rPr lang="en-US" sz="3200" b="1"/><a:t>%s</a:t></a:r></a:p></p:txBody>
      </p:sp>
`, xmlEscape(s.Title))

	if len(s.Bullets) > 0 {
		var paras strings.Builder
		for _, bullet := range s.Bullets {
			fmt.Fprintf(&paras, `<a:p><a:pPr lvl="0"/><a:r><a:rPr lang="en-US" sz="1800"/><a:t>%s</a:t></a:r></a:p>`, xmlEscape(bullet))
		}
		fmt.Fprintf(&body, `      <p:sp>
        <p:nvSpPr><p:cNvPr id="3" name="Content"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
        <p:spPr><a:xfrm><a:off x="838200" y="1825625"/><a:ext cx="10515600" cy="4351338"/></a:xfrm></p:spPr>
        <p:txBody><a:bodyPr/>%s</p:txBody>
      </p:sp>
`, paras.String())
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
      <p:grpSpPr/>
%s    </p:spTree>
  </p:cSld>
</p:sld>`, body.String())
}
