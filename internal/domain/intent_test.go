package domain

import (
	"testing"
)

func TestDecodeIntent_Navigate(t *testing.T) {
	raw := []byte(`{"command":"navigate","destination":"Paris","waypoints":["Lyon"],"mode":"cycling-regular"}`)

	in := DecodeIntent(raw)
	if in.Command != CommandNavigate {
		t.Fatalf("expected navigate, got %s", in.Command)
	}
	if in.Destination != "Paris" {
		t.Errorf("expected destination 'Paris', got '%s'", in.Destination)
	}
	if len(in.Waypoints) != 1 || in.Waypoints[0] != "Lyon" {
		t.Errorf("unexpected waypoints %v", in.Waypoints)
	}
	if in.Mode != string(ModeCycling) {
		t.Errorf("expected cycling mode, got '%s'", in.Mode)
	}
}

func TestDecodeIntent_NormalizesMode(t *testing.T) {
	in := DecodeIntent([]byte(`{"command":"navigate","destination":"Paris","mode":"hovercraft"}`))
	if in.Mode != string(ModeDriving) {
		t.Errorf("unrecognized mode should fall back to driving, got '%s'", in.Mode)
	}

	in = DecodeIntent([]byte(`{"command":"get_eta","from":"A","to":"B"}`))
	if in.Mode != string(ModeDriving) {
		t.Errorf("empty mode should default to driving, got '%s'", in.Mode)
	}
}

func TestDecodeIntent_InvalidJSON(t *testing.T) {
	in := DecodeIntent([]byte(`not json at all`))
	if in.Command != CommandError {
		t.Fatalf("expected error command, got %s", in.Command)
	}
	if in.Message == "" {
		t.Error("expected an error message")
	}
}

func TestDecodeIntent_UnknownCommand(t *testing.T) {
	in := DecodeIntent([]byte(`{"command":"teleport","destination":"Mars"}`))
	if in.Command != CommandUnknown {
		t.Fatalf("expected unknown command, got %s", in.Command)
	}
}

func TestDecodeIntent_CommandWhitespace(t *testing.T) {
	in := DecodeIntent([]byte(`{"command":" zoom ","action":"in"}`))
	if in.Command != CommandZoom {
		t.Fatalf("expected zoom after trimming, got %q", in.Command)
	}
}

func TestDecodeIntent_LayerNormalization(t *testing.T) {
	in := DecodeIntent([]byte(`{"command":"change_layer","layer_type":" Satellite "}`))
	if in.LayerType != "satellite" {
		t.Errorf("expected lowercased layer, got '%s'", in.LayerType)
	}

	in = DecodeIntent([]byte(`{"command":"change_layer"}`))
	if in.LayerType != DefaultLayer {
		t.Errorf("expected default layer, got '%s'", in.LayerType)
	}
}

func TestDecodeIntent_ZoomActionAliases(t *testing.T) {
	cases := []struct {
		action string
		want   string
	}{
		{"start_point", ZoomToStart},
		{"destination", ZoomToDestination},
		{" To_Start ", ZoomToStart},
		{"to_location", ZoomToLocation},
	}
	for _, c := range cases {
		in := DecodeIntent([]byte(`{"command":"zoom","action":"` + c.action + `"}`))
		if in.Action != c.want {
			t.Errorf("action %q: got %q, want %q", c.action, in.Action, c.want)
		}
	}
}

func TestDecodeIntent_ContactNormalization(t *testing.T) {
	in := DecodeIntent([]byte(`{"command":"send_whatsapp_location","contact":" Mom "}`))
	if in.Contact != "mom" {
		t.Errorf("expected lowercased contact, got '%s'", in.Contact)
	}
}

func TestNormalizeMode(t *testing.T) {
	cases := []struct {
		in   string
		want TravelMode
	}{
		{"driving-car", ModeDriving},
		{"cycling-regular", ModeCycling},
		{"foot-walking", ModeWalking},
		{"", ModeDriving},
		{"bus", ModeDriving},
	}
	for _, c := range cases {
		if got := NormalizeMode(c.in); got != c.want {
			t.Errorf("NormalizeMode(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}
