package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across the pipeline so that
// per-row diagnostics can be filtered by source, page or reason.
const (
	FieldFile       = "file_path"
	FieldSource     = "source"
	FieldPage       = "page"
	FieldLine       = "line"
	FieldReason     = "reason"
	FieldHash       = "hash"
	FieldDate       = "date"
	FieldAmount     = "amount"
	FieldType       = "type"
	FieldCount      = "count"
	FieldKeyword    = "keyword"
	FieldSubject    = "subject"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
