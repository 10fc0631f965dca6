package mandel

import (
	"encoding/json"
	"testing"
)

func TestParseOp(t *testing.T) {
	for o := MoveUp; o <= Quit; o++ {
		got, err := ParseOp(o.String())
		if err != nil || got != o {
			t.Errorf("ParseOp(%q) = %v, %v", o.String(), got, err)
		}
	}
	if got, err := ParseOp("ZOOMIN"); err != nil || got != ZoomIn {
		t.Errorf("ParseOp(ZOOMIN) = %v, %v", got, err)
	}
	if _, err := ParseOp("jump"); err == nil {
		t.Error("ParseOp(jump) succeeded")
	}
}

func TestOp_JSON(t *testing.T) {
	type msg struct {
		Op Op `json:"op"`
	}
	b, err := json.Marshal(msg{Op: MoveLeft})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"op":"moveLeft"}` {
		t.Errorf("Marshal = %s", b)
	}

	var m msg
	if err := json.Unmarshal([]byte(`{"op":"zoomOut"}`), &m); err != nil || m.Op != ZoomOut {
		t.Errorf("Unmarshal = %v, %v", m.Op, err)
	}
	if err := json.Unmarshal([]byte(`{"op":"fly"}`), &m); err == nil {
		t.Error("Unmarshal of unknown op succeeded")
	}
}

func TestOp_Navigates(t *testing.T) {
	for o := MoveUp; o <= ZoomOut; o++ {
		if !o.Navigates() {
			t.Errorf("%v.Navigates() = false", o)
		}
	}
	if Snapshot.Navigates() || Quit.Navigates() {
		t.Error("Snapshot/Quit navigate")
	}
}

func TestOp_Apply(t *testing.T) {
	r := Classic
	r.Apply(ZoomIn, DefaultMoveRate, DefaultZoomRate)
	want := Classic
	want.ZoomIn(DefaultZoomRate)
	if r != want {
		t.Errorf("Apply(ZoomIn) = %v, want %v", r, want)
	}

	r = Classic
	r.Apply(Snapshot, DefaultMoveRate, DefaultZoomRate)
	if r != Classic {
		t.Errorf("Apply(Snapshot) moved the region to %v", r)
	}
}
