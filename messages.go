package skyflow

import "fmt"

// Message identifies one entry of the SDK's message catalog. Each entry owns
// a fixed template; parameters are supplied when the message is rendered.
type Message int

const (
	MsgUnknown Message = iota

	// Client initialization.
	MsgInitFailed
	MsgInvalidVaultURL
	MsgTokenProviderFailed
	MsgInvalidConfigFile

	// Record validation.
	MsgRecordsKeyError
	MsgInvalidRecordsType
	MsgTableKeyError
	MsgInvalidTableType
	MsgIdsKeyError
	MsgInvalidIdsType
	MsgInvalidIDType
	MsgEmptyIds
	MsgFieldsKeyError
	MsgInvalidFieldsType
	MsgRedactionKeyError
	MsgInvalidRedactionType
	MsgInvalidJSON

	// Gateway.
	MsgInvalidGatewayURL
	MsgInvalidRequestMethod
	MsgPathParamNotInURL
	MsgInvalidFormBody

	// Responses.
	MsgAPIError
	MsgResponseNotJSON
	MsgRequestFailed
	MsgPartialSuccess
	MsgBatchFailure
)

// template returns the fixed format string of m.
func (m Message) template() string {
	switch m {
	case MsgInitFailed:
		return "Initialization failed. Invalid %s"
	case MsgInvalidVaultURL:
		return "Vault URL %q is not a valid http(s) URL"
	case MsgTokenProviderFailed:
		return "Token provider failed to return a bearer token"
	case MsgInvalidConfigFile:
		return "Unable to load configuration file %s"
	case MsgRecordsKeyError:
		return "Records key is missing from payload"
	case MsgInvalidRecordsType:
		return "Records key has value of type %s, expected list"
	case MsgTableKeyError:
		return "Table key is missing from payload"
	case MsgInvalidTableType:
		return "Table key has value of type %s, expected string"
	case MsgIdsKeyError:
		return "Ids key is missing from payload"
	case MsgInvalidIdsType:
		return "Ids key has value of type %s, expected list"
	case MsgInvalidIDType:
		return "Id key has value of type %s, expected string"
	case MsgEmptyIds:
		return "Ids list of record %d is empty"
	case MsgFieldsKeyError:
		return "Fields key is missing from payload"
	case MsgInvalidFieldsType:
		return "Fields key has value of type %s, expected map"
	case MsgRedactionKeyError:
		return "Redaction key is missing from payload"
	case MsgInvalidRedactionType:
		return "Redaction key has value of type %s, expected skyflow.RedactionType"
	case MsgInvalidJSON:
		return "Invalid JSON in %s"
	case MsgInvalidGatewayURL:
		return "Gateway URL %q is not a valid URI"
	case MsgInvalidRequestMethod:
		return "Request method %q is not supported"
	case MsgPathParamNotInURL:
		return "Path param %s is not present in the gateway URL"
	case MsgInvalidFormBody:
		return "Form encoded request body has type %s, expected map"
	case MsgAPIError:
		return "Server returned status code %d"
	case MsgResponseNotJSON:
		return "Response %s is not valid JSON"
	case MsgRequestFailed:
		return "Request to %s failed"
	case MsgPartialSuccess:
		return "Server returned errors, check Error.Data for more"
	case MsgBatchFailure:
		return "Server returned errors for every record, check Error.Data for more"
	case MsgUnknown:
		return "unknown error"
	}
	return "unknown error"
}

// Format renders m with args.
func (m Message) Format(args ...any) string {
	if len(args) == 0 {
		return m.template()
	}
	return fmt.Sprintf(m.template(), args...)
}
