// Package xml provides the WordprocessingML structures used to read and
// rewrite word/document.xml.
//
// The model is deliberately narrow. Paragraphs, runs, hyperlinks and tables
// are typed because the editor walks and rewrites them; the paragraph and run
// properties that carry visible formatting (style, alignment, indentation,
// spacing, numbering, bold/italic/underline, fonts, size, color) are typed so
// they can be captured and cloned. Everything else is kept as RawXMLElement
// and written back where it was found, so a parse/marshal round trip does
// not lose content the editor does not understand.
//
// # Structure Organization
//
//   - types.go: Core interfaces (BodyElement, ParagraphContent, RunContent) and toggles
//   - raw.go: RawXMLElement, the passthrough node tree
//   - names.go: namespace URI to prefix mapping used when writing
//   - document.go: Document and Body, ParseDocument, MarshalDocument
//   - paragraph.go: Paragraph, its properties, and Hyperlink
//   - run.go: Run, its properties, Text, Break and Tab
//   - table.go: Table, TableRow and TableCell
//
// # Writing
//
// Elements are written with literal prefixes ("w:p", "r:id") instead of
// namespace URIs so the encoder does not invent prefixes; the root element
// keeps the xmlns declarations of the source document. Property children are
// written in schema order, with preserved unknown children slotted into
// their schema position.
package xml
