package fecverify

import "testing"

func TestCheckErasureToleranceReconstructsAtTheLimit(t *testing.T) {
	res, err := CheckErasureTolerance(10, 4, 64)
	if err != nil {
		t.Fatalf("CheckErasureTolerance returned error: %v", err)
	}
	if !res.Reconstructed {
		t.Fatal("expected a (10,4) code to reconstruct after losing exactly 4 shards")
	}
}

func TestCheckErasureToleranceZeroParityIsTrivial(t *testing.T) {
	res, err := CheckErasureTolerance(10, 0, 64)
	if err != nil {
		t.Fatalf("CheckErasureTolerance returned error: %v", err)
	}
	if !res.Reconstructed {
		t.Fatal("a (c0,0) code with no erasures should report feasible")
	}
}

func TestCheckErasureToleranceRejectsInvalidShape(t *testing.T) {
	if _, err := CheckErasureTolerance(0, 4, 64); err == nil {
		t.Fatal("expected an error for c0=0")
	}
}
