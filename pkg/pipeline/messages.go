package pipeline

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/hazyhaar/wordcalc/pkg/expr"
)

// Message keys double as the English text.
const (
	msgDivisionByZero = "Division by zero is not allowed!"
	msgModuloByZero   = "Modulo by zero is not allowed!"
	msgMalformed      = "The expression cannot be understood."
	msgNonFinite      = "The result is too large or undefined."
)

var translations = map[language.Tag]map[string]string{
	language.Russian: {
		msgDivisionByZero: "На ноль делить нельзя!",
		msgModuloByZero:   "Остаток от деления на ноль не определён!",
		msgMalformed:      "Не удалось разобрать выражение.",
		msgNonFinite:      "Результат слишком велик или не определён.",
	},
}

func newPrinter(tag language.Tag) *message.Printer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for lang, msgs := range translations {
		for key, text := range msgs {
			b.SetString(lang, key, text)
		}
	}
	return message.NewPrinter(tag, message.Catalog(b))
}

// describe renders an evaluation error for the user.
func describe(p *message.Printer, kind expr.Kind) string {
	switch kind {
	case expr.DivisionByZero:
		return p.Sprintf(msgDivisionByZero)
	case expr.ModuloByZero:
		return p.Sprintf(msgModuloByZero)
	case expr.NonFinite:
		return p.Sprintf(msgNonFinite)
	}
	return p.Sprintf(msgMalformed)
}
