package split

import (
	"errors"
	"testing"
)

func TestValidate_ExactSum(t *testing.T) {
	cases := []struct {
		name   string
		shares []int32
		ok     bool
	}{
		{"single full share", []int32{10000}, true},
		{"two way", []int32{6000, 4000}, true},
		{"ten way", []int32{1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000}, true},
		{"one short", []int32{9999}, false},
		{"one over", []int32{10001}, false},
		{"two way short", []int32{6000, 3999}, false},
		{"empty", nil, false},
	}
	for _, c := range cases {
		recipients := make([]Recipient, 0, len(c.shares))
		for i, s := range c.shares {
			recipients = append(recipients, Recipient{RecipientID: uint64(i + 1), ShareBp: s})
		}
		err := Validate(recipients)
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s: expected error, got nil", c.name)
		}
	}
}

func TestValidate_Limits(t *testing.T) {
	tooMany := make([]Recipient, 11)
	for i := range tooMany {
		tooMany[i] = Recipient{RecipientID: uint64(i + 1), ShareBp: 10000 / 11}
	}
	if err := Validate(tooMany); !errors.Is(err, ErrTooManyRecipients) {
		t.Errorf("expected ErrTooManyRecipients, got %v", err)
	}

	if err := Validate([]Recipient{{RecipientID: 1, ShareBp: 11000}, {RecipientID: 2, ShareBp: -1000}}); !errors.Is(err, ErrNegativeShare) {
		t.Errorf("expected ErrNegativeShare, got %v", err)
	}

	if err := Validate([]Recipient{{RecipientID: 0, ShareBp: 10000}}); !errors.Is(err, ErrZeroRecipient) {
		t.Errorf("expected ErrZeroRecipient, got %v", err)
	}
}

func TestApply_FloorDivision(t *testing.T) {
	recipients := []Recipient{
		{RecipientID: 11, ShareBp: 6000},
		{RecipientID: 12, ShareBp: 4000},
	}
	portions := Apply(recipients, 500)
	if len(portions) != 2 {
		t.Fatalf("expected 2 portions, got %d", len(portions))
	}
	if portions[0].Amount != 300 || portions[1].Amount != 200 {
		t.Errorf("unexpected portions: %+v", portions)
	}
}

func TestApply_RemainderNotRedistributed(t *testing.T) {
	recipients := []Recipient{
		{RecipientID: 1, ShareBp: 3333},
		{RecipientID: 2, ShareBp: 3333},
		{RecipientID: 3, ShareBp: 3334},
	}
	portions := Apply(recipients, 100)
	var total int64
	for _, p := range portions {
		total += p.Amount
	}
	// floor(100*3333/10000)=33, floor(100*3334/10000)=33 → 余数 1 留在来源方
	if total != 99 {
		t.Errorf("expected total 99, got %d", total)
	}
}
