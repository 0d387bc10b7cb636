package arena

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
	"unsafe"
)

// Text is a byte slice interpreted as UTF-8, arena-allocated like
// anything else and just as subject to generation/cross-arena checks.
// Validation is lazy: bytes may be stored arbitrarily, InvalidUTF8 only
// ever surfaces at AsStr.
type Text struct {
	slice Slice[byte]
}

// Len returns the byte length.
func (t Text) Len() uint32 { return t.slice.length }

// IsEmpty reports whether the text holds zero bytes.
func (t Text) IsEmpty() bool { return t.slice.length == 0 }

// AsBytes returns the raw bytes, unvalidated.
func (t Text) AsBytes(a *Arena) ([]byte, error) {
	return GetSlice(a, t.slice)
}

// AsStr returns a UTF-8 string view, or ErrInvalidUTF8 if the bytes are
// malformed.
func (t Text) AsStr(a *Arena) (string, error) {
	b, err := GetSlice(a, t.slice)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// TextFromStr copies s into a freshly head-allocated byte slice.
func TextFromStr(a *Arena, s string) (Text, error) {
	b := []byte(s)
	sl, err := AllocSliceFromFn(a, uint32(len(b)), func(i uint32) byte { return b[i] })
	if err != nil {
		return Text{}, err
	}
	return Text{slice: sl}, nil
}

// TextFromBuffer stages buf's live contents in tail scratch and then
// head-allocates the final slice, releasing the scratch before
// returning. This is the canonical tail-scratch round trip: allocate a
// temporary, copy, allocate the permanent result, restore.
func TextFromBuffer(a *Arena, buf *Buffer[byte]) (Text, error) {
	n := buf.Len()
	saved := a.SaveTailPosition()

	ptr, err := a.TailAllocBytes(n, 1)
	if err != nil {
		a.RestoreTailPosition(saved)
		return Text{}, err
	}

	content, err := GetSlice(a, buf.slice)
	if err != nil {
		a.RestoreTailPosition(saved)
		return Text{}, err
	}
	scratch := unsafe.Slice((*byte)(ptr), n)
	copy(scratch, content[:n])

	sl, err := AllocSliceFromFn(a, n, func(i uint32) byte { return scratch[i] })
	a.RestoreTailPosition(saved)
	if err != nil {
		return Text{}, err
	}
	return Text{slice: sl}, nil
}

// TextFromBytes copies an ASCII byte run that ends at the first zero byte
// (or at the end of bytes). A non-ASCII byte before that point reports
// ErrInvalidUTF8.
func TextFromBytes(a *Arena, bytes []byte) (Text, error) {
	n := 0
	for i, v := range bytes {
		if v == 0 {
			break
		}
		if v > 127 {
			return Text{}, ErrInvalidUTF8
		}
		n = i + 1
	}
	sl, err := AllocSliceFromFn(a, uint32(n), func(i uint32) byte { return bytes[i] })
	if err != nil {
		return Text{}, err
	}
	return Text{slice: sl}, nil
}

// TextFromFunc allocates length bytes generated by f.
func TextFromFunc(a *Arena, length uint32, f func(i uint32) byte) (Text, error) {
	sl, err := AllocSliceFromFn(a, length, f)
	if err != nil {
		return Text{}, err
	}
	return Text{slice: sl}, nil
}

// TextJoin concatenates multiple Texts via the tail-scratch pattern.
func TextJoin(a *Arena, sources []Text) (Text, error) {
	if len(sources) == 0 {
		return Text{}, nil
	}

	var total uint32
	for _, t := range sources {
		total += t.slice.length
	}

	saved := a.SaveTailPosition()
	ptr, err := a.TailAllocBytes(total, 1)
	if err != nil {
		a.RestoreTailPosition(saved)
		return Text{}, err
	}
	scratch := unsafe.Slice((*byte)(ptr), total)

	var off uint32
	for _, t := range sources {
		b, err := GetSlice(a, t.slice)
		if err != nil {
			a.RestoreTailPosition(saved)
			return Text{}, err
		}
		copy(scratch[off:], b)
		off += t.slice.length
	}

	sl, err := AllocSliceFromFn(a, total, func(i uint32) byte { return scratch[i] })
	a.RestoreTailPosition(saved)
	if err != nil {
		return Text{}, err
	}
	return Text{slice: sl}, nil
}

// TextJoinBytes concatenates raw byte slices directly (no arena source
// reads needed, so no tail scratch is required).
func TextJoinBytes(a *Arena, slices [][]byte) (Text, error) {
	if len(slices) == 0 {
		sl, err := AllocSlice[byte](a, nil)
		if err != nil {
			return Text{}, err
		}
		return Text{slice: sl}, nil
	}

	var total uint32
	for _, s := range slices {
		total += uint32(len(s))
	}

	sl, err := AllocSliceFromFn(a, total, func(i uint32) byte {
		var off uint32
		for _, s := range slices {
			if i < off+uint32(len(s)) {
				return s[i-off]
			}
			off += uint32(len(s))
		}
		return 0
	})
	if err != nil {
		return Text{}, err
	}
	return Text{slice: sl}, nil
}

// formatWithTail runs formatFn against a tail-scratch buffer of the given
// size estimate (256 bytes when the estimate is zero; a non-zero estimate
// is used as is, with no minimum), then copies the exact result into a
// head-allocated slice of its true length before releasing the scratch.
func formatWithTail(a *Arena, estimate uint32, formatFn func(buf []byte) (int, error)) (Text, error) {
	if estimate == 0 {
		estimate = 256
	}

	saved := a.SaveTailPosition()
	ptr, err := a.TailAllocBytes(estimate, 1)
	if err != nil {
		a.RestoreTailPosition(saved)
		return Text{}, err
	}
	scratch := unsafe.Slice((*byte)(ptr), estimate)

	n, err := formatFn(scratch)
	if err != nil {
		a.RestoreTailPosition(saved)
		return Text{}, err
	}

	sl, err := AllocSliceFromFn(a, uint32(n), func(i uint32) byte { return scratch[i] })
	a.RestoreTailPosition(saved)
	if err != nil {
		return Text{}, err
	}
	return Text{slice: sl}, nil
}

// placeholder is one parsed {}/{:?}/{:.N} occurrence.
type placeholder struct {
	start, end int
	debug      bool
	precision  int // -1 if absent
}

// parseFormatString parses the placeholder opened by the first '{' in s.
// ok is false if s has no '{', the '{' is never closed, or the
// placeholder is not one of {}, {:?}, {:.N}.
func parseFormatString(s string) (placeholder, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return placeholder{}, false
	}
	end := strings.IndexByte(s[start:], '}')
	if end < 0 {
		return placeholder{}, false
	}
	end += start
	body := s[start+1 : end]

	switch {
	case body == "":
		return placeholder{start: start, end: end + 1, precision: -1}, true
	case body == ":?":
		return placeholder{start: start, end: end + 1, debug: true, precision: -1}, true
	case strings.HasPrefix(body, ":."):
		n, err := strconv.Atoi(body[2:])
		if err != nil || n < 0 || n > 9 {
			return placeholder{}, false
		}
		return placeholder{start: start, end: end + 1, precision: n}, true
	default:
		return placeholder{}, false
	}
}

func countPlaceholders(message string) int {
	count := 0
	remaining := message
	for {
		ph, ok := parseFormatString(remaining)
		if !ok {
			break
		}
		count++
		remaining = remaining[ph.end:]
	}
	return count
}

// validateFormatString rejects malformed or unsupported placeholders with
// the same messages the format grammar's original author used, since
// they double as the panic text for defects.
func validateFormatString(message string) error {
	remaining := message
	for {
		start := strings.IndexByte(remaining, '{')
		if start < 0 {
			break
		}
		endPos := strings.IndexByte(remaining[start:], '}')
		if endPos < 0 {
			return ErrFormatError
		}
		placeholderStr := remaining[start : start+endPos+1]
		if _, ok := parseFormatString(remaining[start:]); !ok {
			if strings.Contains(placeholderStr, "?}") && !strings.HasSuffix(placeholderStr, ":?}") {
				panic("text: invalid format specifier: precision with debug (?), use either {:.N} or {:?}")
			}
			if strings.Contains(placeholderStr, ":.") && strings.Contains(placeholderStr, "?") {
				panic("text: invalid format specifier: cannot combine precision and debug formatting")
			}
			if strings.HasPrefix(placeholderStr, "{:") && strings.HasSuffix(placeholderStr, "}") && len(placeholderStr) > 3 {
				inner := placeholderStr[2 : len(placeholderStr)-1]
				if _, err := strconv.Atoi(inner); err == nil {
					panic("text: invalid format specifier: use {:.N} instead of {:N} for precision formatting")
				}
			}
			panic("text: invalid format specifier: supported formats are {}, {:?}, {:.N}")
		}
		remaining = remaining[start+endPos+1:]
	}
	if strings.ContainsRune(remaining, '}') {
		panic("text: invalid format string: found '}' without matching '{'")
	}
	return nil
}

func formatOne(ph placeholder, value any) string {
	if ph.precision >= 0 {
		switch v := value.(type) {
		case float32:
			return strconv.FormatFloat(float64(v), 'f', ph.precision, 32)
		case float64:
			return strconv.FormatFloat(v, 'f', ph.precision, 64)
		}
	}
	if ph.debug {
		return formatDebugValue(value)
	}
	return formatDisplayValue(value)
}

func formatDisplayValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return stringify(value)
	}
}

func formatDebugValue(value any) string {
	return stringify(value)
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// expand replaces each placeholder in message with the formatted value at
// its ordinal position.
func expand(message string, values []any) (string, error) {
	var b strings.Builder
	remaining := message
	idx := 0
	for {
		ph, ok := parseFormatString(remaining)
		if !ok {
			b.WriteString(remaining)
			break
		}
		b.WriteString(remaining[:ph.start])
		if idx >= len(values) {
			return "", ErrFormatError
		}
		b.WriteString(formatOne(ph, values[idx]))
		idx++
		remaining = remaining[ph.end:]
	}
	return b.String(), nil
}

// TextFormatDisplay formats message1 with values substituted by Display
// rules ({}, {:.N}), appends message2, and allocates the result.
func TextFormatDisplay(a *Arena, message1 string, values []any, message2 string) (Text, error) {
	validateFormatString(message1)
	if got, want := countPlaceholders(message1), len(values); got != want {
		panic("text: placeholder count mismatch")
	}

	estimate := uint32(len(message1) + len(message2) + len(values)*20)
	return formatWithTail(a, estimate, func(buf []byte) (int, error) {
		body, err := expand(message1, values)
		if err != nil {
			return 0, err
		}
		out := body + message2
		if len(out) > len(buf) {
			return 0, &OutOfSpaceError{Requested: uint32(len(out)), Available: uint32(len(buf))}
		}
		copy(buf, out)
		return len(out), nil
	})
}

// TextFormatDbg is TextFormatDisplay but defaulting every placeholder
// without an explicit precision to Debug-style rendering.
func TextFormatDbg(a *Arena, message1 string, values []any, message2 string) (Text, error) {
	validateFormatString(message1)
	if got, want := countPlaceholders(message1), len(values); got != want {
		panic("text: placeholder count mismatch")
	}

	estimate := uint32(len(message1) + len(message2) + len(values)*20)
	return formatWithTail(a, estimate, func(buf []byte) (int, error) {
		var b strings.Builder
		remaining := message1
		idx := 0
		for {
			ph, ok := parseFormatString(remaining)
			if !ok {
				b.WriteString(remaining)
				break
			}
			b.WriteString(remaining[:ph.start])
			ph.debug = true
			b.WriteString(formatOne(ph, values[idx]))
			idx++
			remaining = remaining[ph.end:]
		}
		out := b.String() + message2
		if len(out) > len(buf) {
			return 0, &OutOfSpaceError{Requested: uint32(len(out)), Available: uint32(len(buf))}
		}
		copy(buf, out)
		return len(out), nil
	})
}

// TextFormat formats a single value using whichever rule its placeholder
// requests.
func TextFormat(a *Arena, message1 string, value any, message2 string) (Text, error) {
	estimate := uint32(len(message1) + len(message2) + 20)
	return formatWithTail(a, estimate, func(buf []byte) (int, error) {
		body, err := expand(message1, []any{value})
		if err != nil {
			return 0, err
		}
		out := body + message2
		if len(out) > len(buf) {
			return 0, &OutOfSpaceError{Requested: uint32(len(out)), Available: uint32(len(buf))}
		}
		copy(buf, out)
		return len(out), nil
	})
}
