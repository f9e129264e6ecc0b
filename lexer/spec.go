package lexer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// MaxSpecSize caps how many bytes LoadSpec reads.
const MaxSpecSize = 1 << 20

// ErrSpecTooLarge is returned for spec documents over MaxSpecSize.
var ErrSpecTooLarge = errors.New("lexer: spec exceeds maximum size")

// Spec is the YAML form of a rule list:
//
//	name: calc
//	rules:
//	  - name: number
//	    regex: '[0-9]+'
//	  - name: plus
//	    literal: "+"
//	  - name: space
//	    regex: '[ \t]+'
//	    skip: true
type Spec struct {
	Name  string     `yaml:"name"`
	Rules []RuleSpec `yaml:"rules" validate:"required,min=1,unique=Name,dive"`
}

// RuleSpec is one rule of a Spec. Exactly one of Regex and Literal is set.
type RuleSpec struct {
	Name    string `yaml:"name" validate:"required"`
	Regex   string `yaml:"regex" validate:"required_without=Literal,excluded_with=Literal,lexregex"`
	Literal string `yaml:"literal" validate:"required_without=Regex"`
	Skip    bool   `yaml:"skip"`
}

func newValidator() (*validator.Validate, error) {
	v := validator.New()
	// 空串交给 required_without 处理
	err := v.RegisterValidation("lexregex", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := ParseRegExp(s)
		return err == nil
	})
	if err != nil {
		return nil, fmt.Errorf("register lexregex: %w", err)
	}
	return v, nil
}

// LoadSpec decodes and validates a spec document.
func LoadSpec(r io.Reader) (*Spec, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSpecSize+1))
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	if len(data) > MaxSpecSize {
		return nil, ErrSpecTooLarge
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse spec: %w", err)
	}
	v, err := newValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Struct(&spec); err != nil {
		return nil, fmt.Errorf("invalid spec: %w", err)
	}
	return &spec, nil
}

// LoadSpecFile reads the spec at path.
func LoadSpecFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSpec(f)
}

// CompileRules turns the rule specs into rules, in declaration order.
func (s *Spec) CompileRules() ([]Rule, error) {
	rules := make([]Rule, 0, len(s.Rules))
	for _, rs := range s.Rules {
		var p Pattern
		if rs.Regex != "" {
			var err error
			if p, err = ParseRegExp(rs.Regex); err != nil {
				return nil, fmt.Errorf("rule %q: %w", rs.Name, err)
			}
		} else {
			p = Literal(rs.Literal)
		}
		rules = append(rules, Rule{Name: rs.Name, Pattern: p, Skip: rs.Skip})
	}
	return rules, nil
}
