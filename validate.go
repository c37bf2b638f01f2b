package skyflow

import (
	"fmt"

	oaerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/validate"
)

// recordList extracts the "records" sequence from a caller payload.
func recordList(data map[string]any) ([]map[string]any, error) {
	raw, ok := data["records"]
	if !ok {
		return nil, invalidInput(MsgRecordsKeyError, oaerrors.Required("records", "body", nil))
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []map[string]any:
		out := make([]map[string]any, len(v))
		copy(out, v)
		return out, nil
	default:
		return nil, invalidInput(MsgInvalidRecordsType,
			oaerrors.InvalidType("records", "body", "array", raw), typeName(raw))
	}

	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, invalidInput(MsgInvalidRecordsType,
				oaerrors.InvalidType(fmt.Sprintf("records[%d]", i), "body", "object", item), typeName(item))
		}
		out = append(out, rec)
	}
	return out, nil
}

// recordTable validates the "table" field of the record at index i.
func recordTable(rec map[string]any, i int) (string, error) {
	raw, ok := rec["table"]
	if !ok {
		return "", invalidInput(MsgTableKeyError, oaerrors.Required("table", recordPath(i), nil))
	}
	table, ok := raw.(string)
	if !ok {
		return "", invalidInput(MsgInvalidTableType,
			oaerrors.InvalidType("table", recordPath(i), "string", raw), typeName(raw))
	}
	return table, nil
}

// recordIDs validates the "ids" field of the record at index i. The first
// offending element is reported.
func recordIDs(rec map[string]any, i int) ([]string, error) {
	raw, ok := rec["ids"]
	if !ok {
		return nil, invalidInput(MsgIdsKeyError, oaerrors.Required("ids", recordPath(i), nil))
	}

	var ids []string
	switch v := raw.(type) {
	case []string:
		ids = append(ids, v...)
	case []any:
		ids = make([]string, 0, len(v))
		for j, elem := range v {
			id, ok := elem.(string)
			if !ok {
				return nil, invalidInput(MsgInvalidIDType,
					oaerrors.InvalidType(fmt.Sprintf("ids[%d]", j), recordPath(i), "string", elem), typeName(elem))
			}
			ids = append(ids, id)
		}
	default:
		return nil, invalidInput(MsgInvalidIdsType,
			oaerrors.InvalidType("ids", recordPath(i), "array", raw), typeName(raw))
	}

	if len(ids) == 0 {
		return nil, invalidInput(MsgEmptyIds, oaerrors.Required("ids", recordPath(i), raw), i)
	}
	return ids, nil
}

// recordRedaction validates the "redaction" field of the record at index i.
// Only RedactionType values from the known set are accepted.
func recordRedaction(rec map[string]any, i int) (RedactionType, error) {
	raw, ok := rec["redaction"]
	if !ok {
		return "", invalidInput(MsgRedactionKeyError, oaerrors.Required("redaction", recordPath(i), nil))
	}
	redaction, ok := raw.(RedactionType)
	if !ok {
		return "", invalidInput(MsgInvalidRedactionType,
			oaerrors.InvalidType("redaction", recordPath(i), "RedactionType", raw), typeName(raw))
	}
	if verr := validate.Enum("redaction", recordPath(i), redaction, redactionTypes); verr != nil {
		return "", invalidInput(MsgInvalidRedactionType, verr, fmt.Sprintf("%s(%q)", typeName(raw), redaction))
	}
	return redaction, nil
}

// recordFields validates the "fields" field of an insert record.
func recordFields(rec map[string]any, i int) (map[string]any, error) {
	raw, ok := rec["fields"]
	if !ok {
		return nil, invalidInput(MsgFieldsKeyError, oaerrors.Required("fields", recordPath(i), nil))
	}
	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, invalidInput(MsgInvalidFieldsType,
			oaerrors.InvalidType("fields", recordPath(i), "object", raw), typeName(raw))
	}
	return fields, nil
}

func recordPath(i int) string {
	return fmt.Sprintf("records[%d]", i)
}

// validateLookup validates a detokenize or get-by-id payload and returns one
// RecordGroup per input record, in input order. Validation stops at the
// first violation.
func validateLookup(data map[string]any) ([]RecordGroup, error) {
	records, err := recordList(data)
	if err != nil {
		return nil, err
	}

	groups := make([]RecordGroup, 0, len(records))
	for i, rec := range records {
		ids, err := recordIDs(rec, i)
		if err != nil {
			return nil, err
		}
		table, err := recordTable(rec, i)
		if err != nil {
			return nil, err
		}
		redaction, err := recordRedaction(rec, i)
		if err != nil {
			return nil, err
		}
		groups = append(groups, RecordGroup{
			Index:     i,
			Table:     table,
			IDs:       ids,
			Redaction: redaction,
		})
	}
	return groups, nil
}

// insertRecord is one validated insert input.
type insertRecord struct {
	Table  string
	Fields map[string]any
}

// validateInsert validates an insert payload.
func validateInsert(data map[string]any) ([]insertRecord, error) {
	records, err := recordList(data)
	if err != nil {
		return nil, err
	}

	out := make([]insertRecord, 0, len(records))
	for i, rec := range records {
		table, err := recordTable(rec, i)
		if err != nil {
			return nil, err
		}
		fields, err := recordFields(rec, i)
		if err != nil {
			return nil, err
		}
		out = append(out, insertRecord{Table: table, Fields: fields})
	}
	return out, nil
}
