package wire

import (
	"bufio"
	"bytes"
	"testing"
)

func TestReadRequestSplitsFields(t *testing.T) {
	raw := []byte{}
	raw = append(raw, []byte("prefix")...)
	raw = append(raw, RS)
	raw = append(raw, []byte("hel")...)
	raw = append(raw, EOT)

	r := bufio.NewReader(bytes.NewReader(raw))
	cmd, fields, err := ReadRequest(r)
	if err != nil {
		t.Fatalf("ReadRequest failed: %v", err)
	}
	if cmd != "prefix" {
		t.Fatalf("expected command 'prefix', got %q", cmd)
	}
	if len(fields) != 1 || fields[0] != "hel" {
		t.Fatalf("expected fields [hel], got %v", fields)
	}
}

func TestReadRequestNoFields(t *testing.T) {
	raw := append([]byte("ping"), EOT)
	r := bufio.NewReader(bytes.NewReader(raw))
	cmd, fields, err := ReadRequest(r)
	if err != nil {
		t.Fatalf("ReadRequest failed: %v", err)
	}
	if cmd != "ping" || len(fields) != 0 {
		t.Fatalf("expected command 'ping' with no fields, got %q %v", cmd, fields)
	}
}

func TestReadRequestEmptyIsError(t *testing.T) {
	raw := []byte{EOT}
	r := bufio.NewReader(bytes.NewReader(raw))
	if _, _, err := ReadRequest(r); err != ErrEmptyRequest {
		t.Fatalf("expected ErrEmptyRequest, got %v", err)
	}
}

func TestWriteResponseAppendsEOT(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResponse(&buf, "PONG"); err != nil {
		t.Fatalf("WriteResponse failed: %v", err)
	}
	if buf.String() != "PONG\x04" {
		t.Fatalf("unexpected response bytes: %q", buf.String())
	}
}

func TestParamCountError(t *testing.T) {
	got := ParamCountError(3)
	want := "ERROR - invalid parameters (length = 3)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
