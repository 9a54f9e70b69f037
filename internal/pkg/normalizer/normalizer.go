package normalizer

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pjogani/vedics-api/internal/domain"
)

// Модельные ответы приходят как текст и часто почти-JSON: обёрнуты в
// markdown-ограждение, с одинарными кавычками, с питоноподобными литералами
// или с неэкранированными кавычками внутри строк. Normalize чинит типовые
// дефекты и возвращает структурированный результат, а если починить не
// удалось - исходный текст без изменений.

var (
	fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.+?)\\s*```$")

	noneRe  = regexp.MustCompile(`\bNone\b`)
	trueRe  = regexp.MustCompile(`\bTrue\b`)
	falseRe = regexp.MustCompile(`\bFalse\b`)

	// одинарные кавычки переписываются только в позициях ключей и значений,
	// чтобы не трогать апострофы внутри текста
	singleQuoteRe = regexp.MustCompile(`([{\[,:]\s*)'((?:[^'\\]|\\.)*)'(\s*[}\],:])`)
)

// Normalize превращает сырой текст модели в domain.ModelReply. Если после
// всех ремонтов валидного JSON не получилось, текст возвращается дословно.
func Normalize(raw string) domain.ModelReply {
	text := strings.TrimSpace(raw)
	if text == "" {
		return domain.RawReply(raw)
	}

	text = stripFence(text)
	text = stripWrappingQuotes(text)

	candidate := replacePythonLiterals(text)
	candidate = rewriteSingleQuotes(candidate)
	candidate = escapeInnerQuotes(candidate)

	if json.Valid([]byte(candidate)) && isStructured(candidate) {
		return domain.StructuredReply(json.RawMessage(candidate))
	}

	// последняя попытка: вырезать объект между первой '{' и последней '}'
	if sub, ok := braceSubstring(candidate); ok && json.Valid([]byte(sub)) {
		return domain.StructuredReply(json.RawMessage(sub))
	}

	return domain.RawReply(raw)
}

// stripFence снимает одно markdown-ограждение целиком вокруг текста
func stripFence(s string) string {
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// stripWrappingQuotes снимает одну пару обрамляющих кавычек
func stripWrappingQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			inner := strings.TrimSpace(s[1 : len(s)-1])
			if inner != "" {
				return inner
			}
		}
	}
	return s
}

// replacePythonLiterals заменяет None/True/False на JSON-литералы
func replacePythonLiterals(s string) string {
	s = noneRe.ReplaceAllString(s, "null")
	s = trueRe.ReplaceAllString(s, "true")
	s = falseRe.ReplaceAllString(s, "false")
	return s
}

// rewriteSingleQuotes переписывает одинарные кавычки в двойные до
// неподвижной точки: одна замена открывает позицию для следующей
func rewriteSingleQuotes(s string) string {
	for {
		next := singleQuoteRe.ReplaceAllString(s, `$1"$2"$3`)
		if next == s {
			return next
		}
		s = next
	}
}

// escapeInnerQuotes экранирует двойные кавычки внутри строковых значений.
// Кавычка считается закрывающей, только если следующий непробельный символ
// завершает значение (`,`, `:`, `}`, `]` или конец текста); иначе она
// принадлежит содержимому строки и экранируется. Повторный прогон ничего
// не меняет.
func escapeInnerQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' {
			b.WriteByte(c)
			escaped = true
			continue
		}
		if c != '"' {
			b.WriteByte(c)
			continue
		}

		if !inString {
			inString = true
			b.WriteByte(c)
			continue
		}

		if closesValue(s, i+1) {
			inString = false
			b.WriteByte(c)
		} else {
			b.WriteString(`\"`)
		}
	}

	return b.String()
}

// closesValue сообщает, завершает ли значение кавычка перед позицией i
func closesValue(s string, i int) bool {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case ',', ':', '}', ']':
			return true
		default:
			return false
		}
	}
	return true
}

// isStructured принимает только объект или массив, не голый скаляр
func isStructured(s string) bool {
	t := strings.TrimSpace(s)
	return len(t) > 0 && (t[0] == '{' || t[0] == '[')
}

// braceSubstring возвращает подстроку от первой '{' до последней '}'
func braceSubstring(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
