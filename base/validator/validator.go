package validator

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/ghostart/goapi/domain"
	"github.com/ghostart/goapi/domain/nft"
)

const (
	TagWallet = "wallet"
	TagRarity = "rarity"
)

// IsValidAddress accepts exactly "0x" followed by 40 hex digits, in any case
func IsValidAddress(address string) bool {
	return len(address) == 2+2*common.AddressLength &&
		strings.HasPrefix(address, "0x") &&
		common.IsHexAddress(address)
}

// New returns a validator with the wallet and rarity tags registered
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(TagWallet, func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	_ = v.RegisterValidation(TagRarity, func(fl validator.FieldLevel) bool {
		return nft.Rarity(fl.Field().String()).IsValid()
	})
	return v
}

// Translate maps a validation failure to the client facing error.
// A missing field wins over any malformed one.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return domain.NewError(domain.ErrBadParamInput, err.Error())
	}
	for _, e := range errs {
		if e.Tag() == "required" {
			return domain.ErrMissingFields
		}
	}
	switch errs[0].Tag() {
	case TagWallet:
		return domain.ErrInvalidAddress
	case TagRarity:
		return domain.ErrInvalidRarity
	}
	return domain.NewError(domain.ErrBadParamInput, errs[0].Error())
}
