// Package schemas embeds the JSON Schema documents that describe the
// annotator wire format and the analysis report.
package schemas

import _ "embed"

// AnnotationSchema describes a single annotation response from a worker
// process. Responses are validated against it before they are decoded.
//
//go:embed annotation.schema.json
var AnnotationSchema string

// ReportSchema describes a complete analysis report.
//
//go:embed report.schema.json
var ReportSchema string
