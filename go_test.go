package unum_test

import (
	"bytes"
	"os"
	"testing"
)

const modulePath = "github.com/shabbyrobe/go-unum"

func TestGoMod(t *testing.T) {
	if os.Getenv("UNUM_SKIP_MOD") != "" {
		// Use this to avoid this check while working against a local fork:
		t.Skip()
	}

	bts, err := os.ReadFile("go.mod")
	if err != nil {
		t.Fatal(err)
	}
	bts = fixNL(bts)

	if !bytes.HasPrefix(bts, []byte("module "+modulePath+"\n")) {
		t.Fatal("go.mod has unexpected module path:\n" + string(bts))
	}

	for _, line := range bytes.Split(bts, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if bytes.HasPrefix(line, []byte("replace")) {
			t.Fatal("go.mod contains a replace directive: " + string(line))
		}
	}
}

func fixNL(d []byte) []byte {
	d = bytes.Replace(d, []byte{13, 10}, []byte{10}, -1)
	d = bytes.Replace(d, []byte{13}, []byte{10}, -1)
	return d
}
