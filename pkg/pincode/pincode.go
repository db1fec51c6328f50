package pincode

import (
	"regexp"
	"strconv"
	"strings"
)

var pattern = regexp.MustCompile(`^[0-9]{6}$`)

// Valid 是否为 6 位数字邮编
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// Normalize 去除空白；表格中被识别成数字的邮编（如 110001.0）还原为 6 位字符串
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 && f == float64(int64(f)) && strings.ContainsAny(s, ".eE") {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// NormalizeZone 区域名统一为去空白的大写形式
func NormalizeZone(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
