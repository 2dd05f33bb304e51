package tool

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// stringArg reads args[key] as trimmed text. Non-string scalars are
// formatted; missing keys and nulls yield "".
func stringArg(args map[string]any, key string) string {
	raw, ok := args[key]
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32, int, int64, int32, bool:
		return strings.TrimSpace(fmt.Sprint(v))
	default:
		return ""
	}
}

// DecodeArgs parses raw tool-call arguments. Malformed or non-object input
// yields an empty map together with the decode error.
func DecodeArgs(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}
	args, err := decodeObject(raw)
	if err != nil {
		return map[string]any{}, err
	}
	return args, nil
}

// decodeObject keeps numbers as json.Number so identifiers such as a NIK
// sent without quotes keep every digit.
func decodeObject(raw string) (map[string]any, error) {
	var obj map[string]any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, nil
}

type DetailsKind int

const (
	DetailsAbsent DetailsKind = iota
	DetailsStructured
	DetailsRaw
)

func (k DetailsKind) String() string {
	switch k {
	case DetailsStructured:
		return "structured"
	case DetailsRaw:
		return "raw"
	default:
		return "absent"
	}
}

// RegistrationFields are the patient attributes a registration may carry.
type RegistrationFields struct {
	Name      string `json:"name,omitempty"`
	NIK       string `json:"nik,omitempty"`
	DOB       string `json:"dob,omitempty"`
	Diagnosis string `json:"diagnosis,omitempty"`
}

// Details is the registration payload: either a structured object or raw
// text that was parsed as JSON. Raw text that does not parse keeps empty
// Fields and ParseErr set.
type Details struct {
	Kind     DetailsKind
	Fields   RegistrationFields
	Raw      string
	ParseErr error
}

func ParseDetails(v any) Details {
	switch t := v.(type) {
	case nil:
		return Details{Kind: DetailsAbsent}
	case map[string]any:
		return Details{Kind: DetailsStructured, Fields: fieldsFromMap(t)}
	case string:
		raw := strings.TrimSpace(t)
		if raw == "" {
			return Details{Kind: DetailsAbsent}
		}
		d := Details{Kind: DetailsRaw, Raw: raw}
		obj, err := decodeObject(raw)
		if err != nil {
			d.ParseErr = err
			log.Warn().Err(err).Msg("registration details are not valid JSON, using defaults")
			return d
		}
		d.Fields = fieldsFromMap(obj)
		return d
	default:
		log.Warn().Str("type", fmt.Sprintf("%T", v)).Msg("unsupported registration details payload, using defaults")
		return Details{Kind: DetailsAbsent}
	}
}

func fieldsFromMap(m map[string]any) RegistrationFields {
	if m == nil {
		return RegistrationFields{}
	}
	return RegistrationFields{
		Name:      stringArg(m, "name"),
		NIK:       stringArg(m, "nik"),
		DOB:       stringArg(m, "dob"),
		Diagnosis: stringArg(m, "diagnosis"),
	}
}
