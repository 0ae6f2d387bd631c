package public

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var errProductIDType = errors.New("productId must be a string or number")

// productIDField 兼容字符串与数字两种商品ID
type productIDField string

// UnmarshalJSON 解析商品ID，数字按 JavaScript Number#toString 规则转字符串
func (p *productIDField) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		*p = ""
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = productIDField(strings.TrimSpace(s))
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errProductIDType
	}
	*p = productIDField(formatNumberID(f))
	return nil
}

// formatNumberID 与 JavaScript 一致：|f| >= 1e21 或 < 1e-6 时使用指数形式
func formatNumberID(f float64) string {
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

func (p productIDField) String() string {
	return string(p)
}

// positiveInt 校验数量为正整数
func positiveInt(value *float64) (int, bool) {
	if value == nil {
		return 0, false
	}
	v := *value
	if v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}
