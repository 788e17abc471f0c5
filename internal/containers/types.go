package containers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Record is one container shipment as served by the API. Records are never
// modified after decoding.
type Record struct {
	ID            int64
	Agency        string
	Transhipment  string // empty means no transhipment
	Carrier       string
	Booking       string
	LoadPort      string
	DeliverPort   string
	DischargePort string
	Departure     time.Time
}

// HasTranshipment reports whether the record names a transhipment port.
func (r Record) HasTranshipment() bool {
	return strings.TrimSpace(r.Transhipment) != ""
}

// wireRecord mirrors the /container payload. Pointer fields let the
// validator distinguish a missing key from an empty value.
type wireRecord struct {
	RowID        *int64  `json:"rowidunh" validate:"required"`
	Agency       *string `json:"agency" validate:"required"`
	Transhipment *string `json:"transhipment" validate:"required"`
	Carrier      *string `json:"carrier" validate:"required"`
	Booking      *string `json:"booking" validate:"required"`
	Load         *string `json:"load" validate:"required"`
	Deliver      *string `json:"deliver" validate:"required"`
	Discharge    *string `json:"discharge" validate:"required"`
	DateTime     *string `json:"date_time" validate:"required"`
}

var recordValidate = validator.New(validator.WithRequiredStructEnabled())

// Layouts accepted for date_time values without an explicit offset. They are
// interpreted in the client's configured location.
var localTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (w wireRecord) validate() error {
	if err := recordValidate.Struct(w); err != nil {
		var missing []string
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				missing = append(missing, jsonName(fe.StructField()))
			}
			return fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
		}
		return err
	}
	return nil
}

func (w wireRecord) toRecord(loc *time.Location) (Record, error) {
	if err := w.validate(); err != nil {
		return Record{}, err
	}
	departure, err := parseTimestamp(*w.DateTime, loc)
	if err != nil {
		return Record{}, fmt.Errorf("record %d: %w", *w.RowID, err)
	}
	return Record{
		ID:            *w.RowID,
		Agency:        *w.Agency,
		Transhipment:  *w.Transhipment,
		Carrier:       *w.Carrier,
		Booking:       *w.Booking,
		LoadPort:      *w.Load,
		DeliverPort:   *w.Deliver,
		DischargePort: *w.Discharge,
		Departure:     departure,
	}, nil
}

// DecodeRecords parses a /container list payload. Any record that is missing
// a field, carries an unparseable timestamp, or repeats an id fails the whole
// payload.
func DecodeRecords(payload []byte, loc *time.Location) ([]Record, error) {
	var raw []wireRecord
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	records := make([]Record, 0, len(raw))
	seen := make(map[int64]struct{}, len(raw))
	for i, w := range raw {
		rec, err := w.toRecord(loc)
		if err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("item %d: %w", i, err)}
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, &DecodeError{Err: fmt.Errorf("item %d: duplicate rowidunh %d", i, rec.ID)}
		}
		seen[rec.ID] = struct{}{}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeRecord parses a single /container/{id} payload.
func DecodeRecord(payload []byte, loc *time.Location) (Record, error) {
	var w wireRecord
	if err := json.Unmarshal(payload, &w); err != nil {
		return Record{}, &DecodeError{Err: err}
	}
	rec, err := w.toRecord(loc)
	if err != nil {
		return Record{}, &DecodeError{Err: err}
	}
	return rec, nil
}

func parseTimestamp(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localTimestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date_time %q", value)
}

func jsonName(structField string) string {
	switch structField {
	case "RowID":
		return "rowidunh"
	case "Load":
		return "load"
	case "Deliver":
		return "deliver"
	case "Discharge":
		return "discharge"
	case "DateTime":
		return "date_time"
	default:
		return strings.ToLower(structField)
	}
}
