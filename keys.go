package kvparser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Type 值的类型
type Type string

const (
	TypeString Type = "string"
	TypeNumber Type = "number"
	TypeObject Type = "object"
)

// Types 返回所有支持的类型
func Types() []Type {
	return []Type{TypeString, TypeNumber, TypeObject}
}

// KeyDescriptor 描述一个需要从存储中读取的 key
type KeyDescriptor struct {
	// Key 以 / 分隔的路径，决定值在结果中的嵌套位置
	Key string `yaml:"key" json:"key" validate:"required"`
	// Type 为空时按 string 处理
	Type Type `yaml:"type,omitempty" json:"type,omitempty" validate:"omitempty,oneof=string number object"`
	// Require 为 true 时 key 不存在会使整个 Parse 失败
	Require bool `yaml:"require,omitempty" json:"require,omitempty"`
}

func (k KeyDescriptor) segments() []string {
	return strings.Split(k.Key, "/")
}

var keyValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateKeys 校验 key 描述列表，一次性报告所有不合法的描述
func ValidateKeys(keys []KeyDescriptor) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidKeys, ErrKeysRequired)
	}

	var errs []error
	for i, key := range keys {
		err := keyValidator.Struct(key)
		if err == nil {
			continue
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			errs = append(errs, fmt.Errorf("keys[%d]: %w", i, err))
			continue
		}
		for _, fe := range fieldErrs {
			errs = append(errs, describeFieldError(i, key, fe))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidKeys, errors.Join(errs...))
	}
	return nil
}

func describeFieldError(i int, key KeyDescriptor, fe validator.FieldError) error {
	switch fe.Field() {
	case "Key":
		return fmt.Errorf("keys[%d]: key is required", i)
	case "Type":
		return fmt.Errorf("keys[%d] %q: %w: %q", i, key.Key, ErrUnsupportedType, key.Type)
	default:
		return fmt.Errorf("keys[%d] %q: %s failed on %s", i, key.Key, fe.Field(), fe.Tag())
	}
}

// DecodeKeys 从 YAML（或 JSON）列表读取 key 描述并校验
func DecodeKeys(r io.Reader) ([]KeyDescriptor, error) {
	var keys []KeyDescriptor

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&keys); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeys, err)
	}

	if err := ValidateKeys(keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// LoadKeys 从文件读取 key 描述
func LoadKeys(path string) ([]KeyDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keys file %s: %w", path, err)
	}
	defer f.Close()

	return DecodeKeys(f)
}
