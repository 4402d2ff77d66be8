// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/collectiblevm/codec"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/utils"
)

var (
	ErrInputEmpty      = errors.New("input is empty")
	ErrInputTooLarge   = errors.New("input is too large")
	ErrIndexOutOfRange = errors.New("index out-of-range")
	ErrAborted         = errors.New("aborted")
)

// ParseAddress accepts the checksummed hex or the bech32 form of an address.
func ParseAddress(input string) (codec.Address, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return codec.EmptyAddress, ErrInputEmpty
	}
	return codec.ParseAnyAddress(consts.HRP, input)
}

func Address(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := ParseAddress(input)
			return err
		},
	}
	recipient, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return ParseAddress(recipient)
}

func String(label string, minLen int, maxLen int) (string, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) < minLen {
				return ErrInputEmpty
			}
			if len(input) > maxLen {
				return ErrInputTooLarge
			}
			return nil
		},
	}
	text, err := promptText.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ParseUint parses a base 10 integer no larger than [maxValue].
func ParseUint(input string, maxValue uint64) (uint64, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return 0, ErrInputEmpty
	}
	v, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return 0, err
	}
	if v > maxValue {
		return 0, fmt.Errorf("%w: %d must be <= %d", ErrInputTooLarge, v, maxValue)
	}
	return v, nil
}

func Uint(label string, maxValue uint64) (uint64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := ParseUint(input, maxValue)
			return err
		},
	}
	raw, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return ParseUint(raw, maxValue)
}

// ParseAmount parses a decimal balance no larger than [balance].
func ParseAmount(input string, balance uint64) (uint64, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return 0, ErrInputEmpty
	}
	amount, err := utils.ParseBalance(input)
	if err != nil {
		return 0, err
	}
	if amount > balance {
		return 0, fmt.Errorf("%w: %s > %s", ErrInputTooLarge, utils.FormatBalance(amount), utils.FormatBalance(balance))
	}
	return amount, nil
}

func Amount(label string, balance uint64) (uint64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := ParseAmount(input, balance)
			return err
		},
	}
	raw, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return ParseAmount(raw, balance)
}

func Choice(label string, maxChoice int) (int, error) {
	if maxChoice == 1 {
		utils.Outf("{{yellow}}%s:{{/}} 0 [auto-selected]\n", label)
		return 0, nil
	}
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			index, err := strconv.Atoi(input)
			if err != nil {
				return err
			}
			if index >= maxChoice || index < 0 {
				return ErrIndexOutOfRange
			}
			return nil
		},
	}
	rawIndex, err := promptText.Run()
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(rawIndex)
}

// Continue asks for confirmation before an irreversible command is sent.
// It returns [ErrAborted] unless the user confirms.
func Continue() error {
	promptText := promptui.Select{
		Label: "continue (y/n)",
		Items: []string{"y", "n"},
	}
	_, result, err := promptText.Run()
	if err != nil {
		return err
	}
	if result != "y" {
		return ErrAborted
	}
	return nil
}
