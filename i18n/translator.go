package i18n

import "strings"

// Translator retrieves localized messages for error codes. params provides
// optional values to embed in the message (for example, "min" or "choices").
type Translator interface {
	Message(code string, params map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates embed
// params as {name} placeholders.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, params map[string]string) string {
	return interpolate(t.template(code), params)
}

func (t dictTranslator) template(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "required":
			return "このフィールドは必須です"
		case "invalid_choice":
			return "{choices} のいずれかを指定してください"
		case "invalid_type":
			return "{expected}ではありません"
		case "too_small":
			return "{value} は {min} より大きい必要があります"
		case "too_big":
			return "{value} は {max} より小さい必要があります"
		case "too_short":
			return "{value} の長さは {min} より大きい必要があります"
		case "too_long":
			return "{value} の長さは {max} より小さい必要があります"
		case "wrong_length":
			return "{value} は {length} 文字である必要があります"
		case "pattern":
			return "{value} は {pattern} にマッチしません"
		case "invalid_format":
			return "{value} は有効な{expected}ではありません"
		case "overflow":
			return "{value} は64ビットに収まりません"
		case "parse_error":
			return "解析エラー"
		case "business_rule":
			return "ビジネスルールに違反しています"
		}
	default: // "en"
		switch code {
		case "required":
			return "This field is required"
		case "invalid_choice":
			return "Should be one of {choices}"
		case "invalid_type":
			return "This is not a valid {expected}"
		case "too_small":
			return "{value} should be greater than {min}"
		case "too_big":
			return "{value} should be lower than {max}"
		case "too_short":
			return "{value} length should be higher than {min}"
		case "too_long":
			return "{value} length should be lower than {max}"
		case "wrong_length":
			return "{value} should be {length} characters long"
		case "pattern":
			return "{value} doesn't match {pattern}"
		case "invalid_format":
			return "{value} is not a valid {expected}"
		case "overflow":
			return "{value} does not fit in 64 bits"
		case "parse_error":
			return "parse error"
		case "business_rule":
			return "business rule violated"
		}
	}
	return code
}

func interpolate(tmpl string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	out := tmpl
	for k, v := range params {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T renders the message for code through the current Translator.
func T(code string, params map[string]string) string {
	return currentTranslator.Message(code, params)
}
