package models

import (
	"testing"

	"github.com/wallet-persona/internal/types"
)

func TestValueWei(t *testing.T) {
	tx := Transaction{Value: "1000000000000000000"}
	if v := tx.ValueWei(); v == nil || v.String() != "1000000000000000000" {
		t.Errorf("Expected exact wei value, got %v", v)
	}

	for _, bad := range []string{"", "abc", "1.5"} {
		tx := Transaction{Value: bad}
		if v := tx.ValueWei(); v != nil {
			t.Errorf("Expected nil for %q, got %v", bad, v)
		}
	}
}

func TestResolveDirection(t *testing.T) {
	wallet := "0xABCdef1234567890abcdef1234567890abcdef12"

	out := ResolveDirection(types.NewAddressField(wallet), wallet)
	if out != types.DirectionOutgoing {
		t.Errorf("Sender match must be outgoing, got %s", out)
	}

	in := ResolveDirection(types.NewAddressField("0xother"), wallet)
	if in != types.DirectionIncoming {
		t.Errorf("Sender mismatch must be incoming, got %s", in)
	}

	// Unparseable sender defaults to incoming.
	var invalid types.AddressField
	if got := ResolveDirection(invalid, wallet); got != types.DirectionIncoming {
		t.Errorf("Invalid sender must default to incoming, got %s", got)
	}
}
