package xml

import (
	"encoding/xml"
	"strings"
	"sync"
)

// Namespace URIs the editor refers to directly.
const (
	NamespaceW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceXML = "http://www.w3.org/XML/1998/namespace"
)

// wellKnownPrefixes maps namespace URIs to the prefixes Word writes for them.
var wellKnownPrefixes = map[string]string{
	// Core Word namespaces
	NamespaceW:   "w",
	NamespaceR:   "r",
	NamespaceXML: "xml",
	"http://schemas.openxmlformats.org/officeDocument/2006/math": "m",
	// Drawing namespaces
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing":    "wp14",
	"http://schemas.microsoft.com/office/drawing/2010/main":                  "a14",
	// VML namespaces
	"urn:schemas-microsoft-com:vml":           "v",
	"urn:schemas-microsoft-com:office:office": "o",
	"urn:schemas-microsoft-com:office:word":   "w10",
	// Markup compatibility namespace
	"http://schemas.openxmlformats.org/markup-compatibility/2006": "mc",
	// Word processing shapes and canvas
	"http://schemas.microsoft.com/office/word/2010/wordprocessingShape":  "wps",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingCanvas": "wpc",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingGroup":  "wpg",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingInk":    "wpi",
	// Extended Word namespaces
	"http://schemas.microsoft.com/office/word/2010/wordml":               "w14",
	"http://schemas.microsoft.com/office/word/2012/wordml":               "w15",
	"http://schemas.microsoft.com/office/word/2015/wordml/symex":         "w16se",
	"http://schemas.microsoft.com/office/word/2016/wordml/cid":           "w16cid",
	"http://schemas.microsoft.com/office/word/2018/wordml":               "w16",
	"http://schemas.microsoft.com/office/word/2018/wordml/cex":           "w16cex",
	"http://schemas.microsoft.com/office/word/2020/wordml/sdtdatahash":   "w16sdtdh",
	"http://schemas.microsoft.com/office/word/2024/wordml/sdtformatlock": "w16sdtfl",
	"http://schemas.microsoft.com/office/word/2023/wordml/word16du":      "w16du",
	"http://schemas.microsoft.com/office/word/2006/wordml":               "wne",
	// Chart namespaces
	"http://schemas.microsoft.com/office/drawing/2014/chartex":        "cx",
	"http://schemas.microsoft.com/office/drawing/2015/9/8/chartex":    "cx1",
	"http://schemas.microsoft.com/office/drawing/2015/10/21/chartex":  "cx2",
	"http://schemas.microsoft.com/office/drawing/2016/5/9/chartex":    "cx3",
	"http://schemas.microsoft.com/office/drawing/2016/5/10/chartex":   "cx4",
	"http://schemas.microsoft.com/office/drawing/2016/5/11/chartex":   "cx5",
	"http://schemas.microsoft.com/office/drawing/2016/5/12/chartex":   "cx6",
	"http://schemas.microsoft.com/office/drawing/2016/5/13/chartex":   "cx7",
	"http://schemas.microsoft.com/office/drawing/2016/5/14/chartex":   "cx8",
	"http://schemas.microsoft.com/office/drawing/2016/ink":            "aink",
	"http://schemas.microsoft.com/office/drawing/2017/model3d":        "am3d",
	"http://schemas.microsoft.com/office/2019/extlst":                 "oel",
}

// prefixTable maps namespace URIs to the prefixes one document declared for
// them on its root element.
type prefixTable map[string]string

// declaredPrefixes collects the xmlns declarations found in attrs. The first
// prefix declared for a URI wins.
func declaredPrefixes(attrs []xml.Attr) prefixTable {
	table := make(prefixTable)
	for _, a := range attrs {
		var prefix string
		switch {
		case a.Name.Space == "xmlns":
			prefix = a.Name.Local
		case strings.HasPrefix(a.Name.Local, "xmlns:"):
			prefix = strings.TrimPrefix(a.Name.Local, "xmlns:")
		default:
			continue
		}
		if a.Value == "" || prefix == "" {
			continue
		}
		if _, ok := table[a.Value]; !ok {
			table[a.Value] = prefix
		}
	}
	return table
}

// encoderPrefixes binds each encoder that is writing a Document to the
// prefix table of that document, for the duration of the write.
var encoderPrefixes sync.Map

func bindPrefixes(e *xml.Encoder, table prefixTable) func() {
	encoderPrefixes.Store(e, table)
	return func() { encoderPrefixes.Delete(e) }
}

func prefixesFor(e *xml.Encoder) prefixTable {
	if v, ok := encoderPrefixes.Load(e); ok {
		return v.(prefixTable)
	}
	return nil
}

// namespaceToPrefix converts a namespace URI to the prefix the document
// declared for it, falling back to the conventional one. Unknown URIs are
// returned as-is; the decoder leaves undeclared prefixes untranslated, so
// that is the prefix.
func (t prefixTable) namespaceToPrefix(uri string) string {
	if prefix, ok := t[uri]; ok {
		return prefix
	}
	if prefix, ok := wellKnownPrefixes[uri]; ok {
		return prefix
	}
	return uri
}

// qualify turns a decoded name (namespace URI + local) back into the
// prefixed form written to the part, e.g. "w:p".
func qualify(e *xml.Encoder, name xml.Name) xml.Name {
	return prefixesFor(e).qualify(name)
}

func (t prefixTable) qualify(name xml.Name) xml.Name {
	if name.Space == "" {
		return xml.Name{Local: name.Local}
	}
	if name.Space == "xmlns" {
		return xml.Name{Local: "xmlns:" + name.Local}
	}
	return xml.Name{Local: t.namespaceToPrefix(name.Space) + ":" + name.Local}
}

// qualifyAttrs returns attrs with prefixed names and no namespace, so the
// encoder writes them verbatim instead of inventing prefixes.
func qualifyAttrs(e *xml.Encoder, attrs []xml.Attr) []xml.Attr {
	if len(attrs) == 0 {
		return nil
	}
	t := prefixesFor(e)
	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, xml.Attr{Name: t.qualify(a.Name), Value: a.Value})
	}
	return out
}

// wName returns an element name in the main WordprocessingML namespace.
func wName(local string) xml.Name {
	return xml.Name{Local: "w:" + local}
}

// wAttr returns an attribute in the main WordprocessingML namespace.
func wAttr(local, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: "w:" + local}, Value: value}
}

// isW reports whether name is local in the main WordprocessingML namespace.
// Documents that bind w to an unexpected URI still carry the "w" prefix as
// the space, so that is accepted too.
func isW(name xml.Name, local string) bool {
	if name.Local != local {
		return false
	}
	return name.Space == NamespaceW || name.Space == "w" || name.Space == ""
}
