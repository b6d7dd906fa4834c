package live

import (
	"strconv"

	"github.com/vango-dev/hyper/pkg/hyper"
)

// Counter is a small demo app: a number with buttons that change it.
func Counter() App {
	return App{
		Title: "Counter",
		Update: func(model, msg any) any {
			n, _ := model.(int)
			switch msg {
			case "inc":
				return n + 1
			case "dec":
				return n - 1
			case "reset":
				return 0
			}
			return n
		},
		View: func(model any, _ []any) any {
			n, _ := model.(int)
			return []any{"main.counter",
				[]any{"h1", "Count: ", strconv.Itoa(n)},
				[]any{"button", hyper.Props{"onclick": "dec"}, "-"},
				[]any{"button", hyper.Props{"onclick": "inc"}, "+"},
				[]any{"button.reset", hyper.Props{"onclick": "reset", "disabled": n == 0}, "reset"},
			}
		},
	}
}
