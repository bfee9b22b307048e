package skill

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Calculator evaluates arithmetic expressions with a hand-written
// recursive-descent parser. Input passes through a strict character
// whitelist first, so there is no path from user text to anything but
// the four operators, parentheses, and numbers.
type Calculator struct{}

func NewCalculator() *Calculator { return &Calculator{} }

func (c *Calculator) Name() string        { return "calculator" }
func (c *Calculator) Description() string { return "四则运算计算器，支持中文运算符" }

func (c *Calculator) Execute(_ context.Context, params map[string]string) (Result, error) {
	raw := params["expression"]
	expr := sanitizeExpression(raw)
	if expr == "" {
		return Result{Error: "没有找到可以计算的算式"}, nil
	}

	value, err := evalExpression(expr)
	if err != nil {
		return Result{Error: err.Error()}, nil
	}

	return Result{
		Success: true,
		Data: map[string]any{
			"expression": expr,
			"result":     value,
			"formatted":  formatNumber(value),
		},
	}, nil
}

// chineseOperators maps spoken-form and full-width operators to their symbols.
var chineseOperators = strings.NewReplacer(
	"加", "+", "减", "-", "乘以", "*", "乘", "*", "除以", "/", "除", "/",
	"×", "*", "÷", "/", "＋", "+", "－", "-", "（", "(", "）", ")", "点", ".",
)

// sanitizeExpression normalizes Chinese operators and full-width digits,
// then extracts the longest contiguous run of whitelisted characters.
// A character outside the whitelist acts as a boundary rather than being
// deleted, so junk in the middle of an expression can never splice two
// digit runs together: "3+5x2" yields "3+5", not "3+52". Surrounding words
// like 等于几 still simply disappear.
func sanitizeExpression(raw string) string {
	s := chineseOperators.Replace(strings.TrimSpace(raw))

	var runs []string
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			runs = append(runs, sb.String())
			sb.Reset()
		}
	}
	for _, r := range s {
		if r >= '０' && r <= '９' {
			r = '0' + (r - '０')
		}
		if r >= '0' && r <= '9' || strings.ContainsRune("+-*/().", r) {
			sb.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	longest := ""
	for _, run := range runs {
		if len(run) > len(longest) {
			longest = run
		}
	}
	return strings.TrimLeft(longest, "+*/.")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// evalExpression parses and evaluates with standard precedence:
//
//	expr   = term   { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = number | "-" factor | "(" expr ")"
func evalExpression(expr string) (float64, error) {
	p := &exprParser{input: []rune(expr)}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("算式在 %q 处无法解析", string(p.input[p.pos:]))
	}
	return v, nil
}

type exprParser struct {
	input []rune
	pos   int
}

func (p *exprParser) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, fmt.Errorf("不能除以零")
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	switch {
	case p.peek() == '-':
		p.pos++
		v, err := p.parseFactor()
		return -v, err
	case p.peek() == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("缺少右括号")
		}
		p.pos++
		return v, nil
	default:
		return p.parseNumber()
	}
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 0, fmt.Errorf("算式不完整")
	}
	v, err := strconv.ParseFloat(string(p.input[start:p.pos]), 64)
	if err != nil {
		return 0, fmt.Errorf("无法解析数字 %q", string(p.input[start:p.pos]))
	}
	return v, nil
}
