package qr

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/sakif/employee-directory/internal/model"
)

func TestEncode_ProducesValidPNG(t *testing.T) {
	data, err := Encode("Name: Ada Lovelace\nTitle: Engineering\nEmail: ada@x.com\nPhone: 555-0100")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Encode() output is not a decodable PNG: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		t.Errorf("decoded image has empty bounds %v", bounds)
	}
	if bounds.Dx() != bounds.Dy() {
		t.Errorf("QR image not square: %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestEncode_Deterministic(t *testing.T) {
	text := "Name: Grace Hopper\nTitle: Research\nEmail: grace@x.com\nPhone: 555-0199"

	first, err := Encode(text)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	second, err := Encode(text)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// Same payload, bit-identical bytes — the browser may cache these and
	// a differ would also break any future ETag support.
	if !bytes.Equal(first, second) {
		t.Error("Encode() produced different bytes for the same payload")
	}
}

func TestEncode_DifferentPayloadsDiffer(t *testing.T) {
	a, err := Encode("payload A")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	b, err := Encode("payload B")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("distinct payloads produced identical images")
	}
}

func TestEncode_AutoSizesToPayload(t *testing.T) {
	decode := func(t *testing.T, data []byte) int {
		t.Helper()
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decoding PNG: %v", err)
		}
		return img.Bounds().Dx()
	}

	short, err := Encode("hi")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	long, err := Encode("Name: Someone With A Rather Long Name\nTitle: Department Of Redundancy Department\nEmail: someone.with.a.rather.long.name@example-company.com\nPhone: +1 (555) 010-0100 ext. 42")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if decode(t, long) <= decode(t, short) {
		t.Error("longer payload should produce a larger symbol at fixed module size")
	}
}

func TestContactText(t *testing.T) {
	e := model.Employee{
		Name:     "Ada Lovelace",
		Email:    "ada@x.com",
		Phone:    "555-0100",
		Domain:   "Engineering",
		LinkedIn: "https://linkedin.com/in/ada", // must NOT appear in the payload
	}

	got := ContactText(e)
	want := "Name: Ada Lovelace\nTitle: Engineering\nEmail: ada@x.com\nPhone: 555-0100"
	if got != want {
		t.Errorf("ContactText() = %q, want %q", got, want)
	}
}
