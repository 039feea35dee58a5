package i18n

import "gopkg.in/yaml.v3"

// Translator retrieves localized messages for message codes. data provides
// optional metadata to embed in the message (for example, "min" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator, optionally
// shadowed by a loaded catalog.
type dictTranslator struct {
	lang    string
	catalog map[string]map[string]string // lang -> code -> message
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	if m := t.catalog[t.lang]; m != nil {
		if msg, ok := m[code]; ok {
			return msg
		}
	}
	switch t.lang {
	case "ja":
		switch code {
		case "required":
			return "必須です"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "too_small":
			return "小さすぎます"
		case "too_big":
			return "大きすぎます"
		case "pattern":
			return "形式が不正です"
		case "invalid_enum":
			return "許可されていない値です"
		case "validation_failed":
			return "検証に失敗しました"
		}
	default: // "en"
		switch code {
		case "required":
			return "required"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "pattern":
			return "invalid format"
		case "invalid_enum":
			return "not an allowed value"
		case "validation_failed":
			return "validation failed"
		}
	}
	return code
}

var current = dictTranslator{lang: "en"}

var currentTranslator Translator = current

// SetLanguage switches the built-in Translator language ("en"/"ja"). A
// loaded catalog is retained across switches.
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.lang = lang
	currentTranslator = current
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). Passing nil restores the built-in dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = current
		return
	}
	currentTranslator = tr
}

// LoadCatalog merges a YAML document of per-language message overrides into
// the built-in dictionary and makes it current. Codes absent from the
// catalog keep their built-in text. The document shape is:
//
//	en:
//	  required: this field is required
//	ja:
//	  required: 入力してください
func LoadCatalog(data []byte) error {
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if current.catalog == nil {
		current.catalog = make(map[string]map[string]string, len(doc))
	}
	for lang, msgs := range doc {
		m := current.catalog[lang]
		if m == nil {
			m = make(map[string]string, len(msgs))
			current.catalog[lang] = m
		}
		for code, msg := range msgs {
			m[code] = msg
		}
	}
	currentTranslator = current
	return nil
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
