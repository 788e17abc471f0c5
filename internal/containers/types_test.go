package containers

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const samplePayload = `[
  {"rowidunh": 1, "agency": "Agencia Maritima", "transhipment": "", "carrier": "MSC",
   "booking": "BK-1", "load": "Valparaiso", "deliver": "Rotterdam", "discharge": "Antwerp",
   "date_time": "2024-03-15T23:59:00"},
  {"rowidunh": 2, "agency": "Ultramar", "transhipment": "Callao", "carrier": "Maersk",
   "booking": "BK-2", "load": "San Antonio", "deliver": "Hamburg", "discharge": "Hamburg",
   "date_time": "2024-03-16T00:01:00Z"}
]`

func TestDecodeRecords_MapsWireFields(t *testing.T) {
	loc := time.UTC
	records, err := DecodeRecords([]byte(samplePayload), loc)
	if err != nil {
		t.Fatalf("DecodeRecords returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	first := records[0]
	if first.ID != 1 || first.Agency != "Agencia Maritima" || first.Carrier != "MSC" ||
		first.Booking != "BK-1" || first.LoadPort != "Valparaiso" ||
		first.DeliverPort != "Rotterdam" || first.DischargePort != "Antwerp" {
		t.Fatalf("first record = %#v, want wire fields mapped", first)
	}
	if first.HasTranshipment() {
		t.Fatalf("HasTranshipment() = true for empty transhipment")
	}
	want := time.Date(2024, 3, 15, 23, 59, 0, 0, loc)
	if !first.Departure.Equal(want) {
		t.Fatalf("Departure = %v, want %v", first.Departure, want)
	}
	if records[1].Transhipment != "Callao" || !records[1].HasTranshipment() {
		t.Fatalf("second record transhipment = %q, want Callao", records[1].Transhipment)
	}
}

func TestDecodeRecords_PreservesOrder(t *testing.T) {
	payload := `[
	  {"rowidunh": 9, "agency": "", "transhipment": "", "carrier": "", "booking": "", "load": "", "deliver": "", "discharge": "", "date_time": "2024-01-01T00:00:00"},
	  {"rowidunh": 3, "agency": "", "transhipment": "", "carrier": "", "booking": "", "load": "", "deliver": "", "discharge": "", "date_time": "2024-01-01T00:00:00"},
	  {"rowidunh": 5, "agency": "", "transhipment": "", "carrier": "", "booking": "", "load": "", "deliver": "", "discharge": "", "date_time": "2024-01-01T00:00:00"}
	]`
	records, err := DecodeRecords([]byte(payload), time.UTC)
	if err != nil {
		t.Fatalf("DecodeRecords returned error: %v", err)
	}
	got := []int64{records[0].ID, records[1].ID, records[2].ID}
	if got[0] != 9 || got[1] != 3 || got[2] != 5 {
		t.Fatalf("ids = %v, want [9 3 5]", got)
	}
}

func TestDecodeRecords_RejectsMissingField(t *testing.T) {
	payload := `[{"rowidunh": 1, "agency": "A", "carrier": "C", "booking": "B",
	  "load": "L", "deliver": "D", "discharge": "X", "date_time": "2024-03-15T10:00:00"}]`
	_, err := DecodeRecords([]byte(payload), time.UTC)
	if err == nil {
		t.Fatalf("DecodeRecords returned nil error, want missing field error")
	}
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("error = %v, want ErrDecode", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error = %T, want *DecodeError", err)
	}
	if !strings.Contains(err.Error(), "transhipment") {
		t.Fatalf("error = %q, want it to name transhipment", err.Error())
	}
}

func TestDecodeRecords_AcceptsZeroID(t *testing.T) {
	payload := `[{"rowidunh": 0, "agency": "", "transhipment": "", "carrier": "", "booking": "",
	  "load": "", "deliver": "", "discharge": "", "date_time": "2024-03-15T10:00:00"}]`
	records, err := DecodeRecords([]byte(payload), time.UTC)
	if err != nil {
		t.Fatalf("DecodeRecords returned error: %v", err)
	}
	if len(records) != 1 || records[0].ID != 0 {
		t.Fatalf("records = %#v, want one record with id 0", records)
	}
}

func TestDecodeRecords_RejectsDuplicateIDs(t *testing.T) {
	payload := `[
	  {"rowidunh": 4, "agency": "", "transhipment": "", "carrier": "", "booking": "", "load": "", "deliver": "", "discharge": "", "date_time": "2024-01-01T00:00:00"},
	  {"rowidunh": 4, "agency": "", "transhipment": "", "carrier": "", "booking": "", "load": "", "deliver": "", "discharge": "", "date_time": "2024-01-01T00:00:00"}
	]`
	_, err := DecodeRecords([]byte(payload), time.UTC)
	if err == nil || !errors.Is(err, ErrDecode) {
		t.Fatalf("error = %v, want ErrDecode for duplicate ids", err)
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("error = %q, want it to mention duplicate", err.Error())
	}
}

func TestDecodeRecords_RejectsBadTimestampAndJSON(t *testing.T) {
	bad := `[{"rowidunh": 1, "agency": "", "transhipment": "", "carrier": "", "booking": "",
	  "load": "", "deliver": "", "discharge": "", "date_time": "15/03/2024"}]`
	if _, err := DecodeRecords([]byte(bad), time.UTC); !errors.Is(err, ErrDecode) {
		t.Fatalf("bad timestamp error = %v, want ErrDecode", err)
	}
	if _, err := DecodeRecords([]byte(`{not-json`), time.UTC); !errors.Is(err, ErrDecode) {
		t.Fatalf("bad json error = %v, want ErrDecode", err)
	}
	if _, err := DecodeRecords([]byte(`{"rowidunh": 1}`), time.UTC); !errors.Is(err, ErrDecode) {
		t.Fatalf("object payload error = %v, want ErrDecode", err)
	}
}

func TestDecodeRecords_NullIsEmpty(t *testing.T) {
	records, err := DecodeRecords([]byte(`null`), time.UTC)
	if err != nil {
		t.Fatalf("DecodeRecords(null) returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("len(records) = %d, want 0", len(records))
	}
}

func TestDecodeRecord_Single(t *testing.T) {
	payload := `{"rowidunh": 77, "agency": "A", "transhipment": "T", "carrier": "C", "booking": "B",
	  "load": "L", "deliver": "D", "discharge": "X", "date_time": "2024-03-15T10:00:00.000Z"}`
	rec, err := DecodeRecord([]byte(payload), time.UTC)
	if err != nil {
		t.Fatalf("DecodeRecord returned error: %v", err)
	}
	if rec.ID != 77 || rec.Transhipment != "T" {
		t.Fatalf("record = %#v, want id 77 transhipment T", rec)
	}
}

func TestParseTimestamp_Locations(t *testing.T) {
	santiago := time.FixedZone("CLT", -3*60*60)

	local, err := parseTimestamp("2024-03-15T23:59:00", santiago)
	if err != nil {
		t.Fatalf("parseTimestamp returned error: %v", err)
	}
	if y, m, d := local.Date(); y != 2024 || m != time.March || d != 15 || local.Hour() != 23 {
		t.Fatalf("zone-less timestamp = %v, want wall clock 2024-03-15 23:59 in location", local)
	}

	// An explicit UTC instant is converted into the location before any day math.
	converted, err := parseTimestamp("2024-03-16T01:00:00Z", santiago)
	if err != nil {
		t.Fatalf("parseTimestamp returned error: %v", err)
	}
	if _, _, d := converted.Date(); d != 15 {
		t.Fatalf("converted day = %d, want 15", d)
	}

	spaced, err := parseTimestamp("2024-03-15 08:30:00", nil)
	if err != nil {
		t.Fatalf("parseTimestamp with space layout returned error: %v", err)
	}
	if spaced.Location() != time.Local {
		t.Fatalf("nil location should default to time.Local, got %v", spaced.Location())
	}
}
