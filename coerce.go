package kvparser

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// coerce 按声明的类型转换原始字符串
func coerce(t Type, raw, effectiveKey string) (any, error) {
	switch t {
	case "", TypeString:
		return raw, nil
	case TypeNumber:
		return toNumber(raw), nil
	case TypeObject:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedObject, effectiveKey, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: type %s for %s", ErrUnsupportedType, t, effectiveKey)
	}
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// toNumber 把字符串转换为数字，规则与 JavaScript 的一元加号一致：
// 去掉首尾空白后为空得到 0；支持 0x/0o/0b 前缀与 Infinity；其余无法识别的输入得到 NaN，不返回错误
func toNumber(s string) float64 {
	s = strings.TrimFunc(s, isNumberSpace)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, ok := new(big.Int).SetString(s[2:], base)
			if !ok || n.Sign() < 0 || strings.ContainsAny(s[2:], "+-_") {
				return math.NaN()
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}

	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}

	// 超出范围时 ParseFloat 返回 ±Inf 或 0，与 JavaScript 一致
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// isNumberSpace 空白字符以及 BOM（U+FEFF）
func isNumberSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}
