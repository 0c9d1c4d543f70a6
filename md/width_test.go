package md

import (
	"testing"

	"github.com/inkwell-md/inkwell/internal/tt"
)

var Args = tt.Args

func TestStringWidth(t *testing.T) {
	tt.Test(t, tt.Fn("stringWidth", stringWidth), tt.Table{
		Args("").Rets(0),
		Args("a").Rets(1),
		Args("abc").Rets(3),
		Args("Ω").Rets(1),
		Args("好").Rets(2),
		Args("か").Rets(2),
		Args("你好").Rets(4),
		Args("á").Rets(1), // "a" with a combining acute accent
	})
}
