package utils

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseCustomDate(t *testing.T) {
	d, err := ParseCustomDate("2030-05-20")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "2030-05-20" {
		t.Fatalf("String() = %s", d.String())
	}

	for _, bad := range []string{"20-05-2030", "2030/05/20", "hom-nay", ""} {
		if _, err := ParseCustomDate(bad); err == nil {
			t.Errorf("ParseCustomDate(%q) phải lỗi", bad)
		}
	}
}

func TestBeforeDayIgnoresClock(t *testing.T) {
	d, _ := ParseCustomDate("2030-05-20")

	// Cùng ngày, muộn hơn trong ngày -> không phải quá khứ
	sameDay := time.Date(2030, 5, 20, 23, 59, 0, 0, time.Local)
	if d.BeforeDay(sameDay) {
		t.Error("cùng ngày không được tính là quá khứ")
	}

	nextDay := time.Date(2030, 5, 21, 0, 0, 1, 0, time.Local)
	if !d.BeforeDay(nextDay) {
		t.Error("hôm trước phải là quá khứ so với hôm sau")
	}

	prevDay := time.Date(2030, 5, 19, 23, 0, 0, 0, time.Local)
	if d.BeforeDay(prevDay) {
		t.Error("hôm sau không phải quá khứ so với hôm trước")
	}
}

func TestCustomDateJSON(t *testing.T) {
	var payload struct {
		Date CustomDate `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2030-05-20"}`), &payload); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"date":"2030-05-20"}` {
		t.Fatalf("round trip sai: %s", out)
	}

	if err := json.Unmarshal([]byte(`{"date":"20/05/2030"}`), &payload); err == nil {
		t.Error("định dạng sai phải lỗi")
	}
}
