package automodel_test

import (
	"fmt"

	"github.com/katalvlaran/spweights/automodel"
	"github.com/katalvlaran/spweights/regress"
)

func ExampleLMChoice() {
	d := regress.Diagnostics{
		LMError:  regress.Test{PValue: 0.002},
		LMLag:    regress.Test{PValue: 0.5},
		RLMError: regress.Test{PValue: 0.01},
		RLMLag:   regress.Test{PValue: 0.6},
		Spatial:  true,
	}
	fmt.Println(automodel.LMChoice(d, 0.05))
	// Output: ERROR
}
