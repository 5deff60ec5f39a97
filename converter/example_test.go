package converter_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/spweights/codec"
	"github.com/katalvlaran/spweights/converter"
)

// ExampleConvert turns a legacy GAL file into GWT keyed by feature labels.
func ExampleConvert() {
	dir, _ := os.MkdirTemp("", "convert")
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "rook.gal")
	_ = os.WriteFile(src, []byte("2\n0 1\n1\n1 1\n0\n"), 0o644)

	dst := filepath.Join(dir, "rook.gwt")
	res, err := converter.Convert(context.Background(), converter.Request{
		Src: src, Dst: dst, Labels: []int{501, 502}, IDField: "TRACT",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	h, _ := codec.ReadHeader(dst)
	fmt.Println(res.N, h.IDField)
	// Output: 2 TRACT
}
