package factory

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toutaio/toutago-nasc-typed-factories/signature"
)

func TestValidate_Success(t *testing.T) {
	ctors := []*signature.Constructor{mustParse(NewParameteredService)}

	for name, token := range map[string]any{
		"concrete result": (*ServiceFactory)(nil),
		"abstract result": (*AbstractFactory)(nil),
		"with error":      (*SafeFactory)(nil),
		"sequence":        (*SequenceFactory)(nil),
		"mixed":           (*MixedFactory)(nil),
	} {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, Validate(mustCapture(token), parameteredType, ctors))
		})
	}
}

func TestValidate_SupersetConstructor(t *testing.T) {
	type twoArgs struct {
		Create func(number int, logger Logger) *ParameteredService `factory:"number,logger"`
	}
	ctors := []*signature.Constructor{mustParse(NewParameteredService)}

	assert.NoError(t, Validate(mustCapture(twoArgs{}), parameteredType, ctors))
}

func TestValidate_CannotConstruct(t *testing.T) {
	ctors := []*signature.Constructor{mustParse(NewMisalignedParameteredService)}

	err := Validate(mustCapture((*ServiceFactory)(nil)), misalignedType, ctors)

	var cannot *CannotConstructError
	require.ErrorAs(t, err, &cannot)
	assert.Equal(t, reflect.TypeOf(ServiceFactory{}), cannot.Contract)
	assert.Equal(t, misalignedType, cannot.Concrete)
}

func TestValidate_SignatureMismatch(t *testing.T) {
	ctors := []*signature.Constructor{mustParse(NewMisalignedParameteredService)}

	err := Validate(mustCapture((*MisalignedFactory)(nil)), misalignedType, ctors)

	var mismatch *SignatureMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Len(t, mismatch.Methods, 1)
	assert.Equal(t, "Create", mismatch.Methods[0].Name)
	assert.Contains(t, err.Error(), "MisalignedFactory")
	assert.Contains(t, err.Error(), "MisalignedParameteredService")
}

func TestValidate_MismatchListsEveryMethod(t *testing.T) {
	type factory struct {
		Create      func(number int) *ParameteredService                      `factory:"number"`
		CreateNamed func(title string) *ParameteredService                    `factory:"title"`
		CreateBoth  func(number int, size int) ([]*ParameteredService, error) `factory:"number,size"`
	}
	ctors := []*signature.Constructor{mustParse(NewParameteredService)}

	err := Validate(mustCapture(factory{}), parameteredType, ctors)

	var mismatch *SignatureMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Len(t, mismatch.Methods, 2)
	assert.Equal(t, "CreateNamed", mismatch.Methods[0].Name)
	assert.Equal(t, "CreateBoth", mismatch.Methods[1].Name)
}
