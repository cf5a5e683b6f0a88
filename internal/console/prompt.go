package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/robotomize/pbrates"
)

const (
	DayCountPrompt   = "Enter the number of past days to fetch the rates for (max 10 days): "
	InvalidInputMsg  = "Invalid input. Please enter a valid number."
	DayCountRangeMsg = "Please enter a number between 1 and 10."
)

var ErrNoInput = errors.New("input closed before a day count was entered")

// ReadDayCount prompts until a number in [1, 10] is entered. There is no attempt limit; only the end
// of input stops the loop
func ReadDayCount(r io.Reader, w io.Writer) (pbrates.DayCount, error) {
	scanner := bufio.NewScanner(r)
	for {
		if _, err := io.WriteString(w, DayCountPrompt); err != nil {
			return 0, fmt.Errorf("write prompt: %w", err)
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("read day count: %w", err)
			}

			return 0, ErrNoInput
		}

		days, msg := parseDayCount(scanner.Text())
		if msg == "" {
			return days, nil
		}

		if _, err := fmt.Fprintln(w, msg); err != nil {
			return 0, fmt.Errorf("write message: %w", err)
		}
	}
}

// parseDayCount returns the accepted count, or the message explaining the rejection
func parseDayCount(line string) (pbrates.DayCount, string) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		// a number too large for int is still a number, just out of range
		if errors.Is(err, strconv.ErrRange) {
			return 0, DayCountRangeMsg
		}

		return 0, InvalidInputMsg
	}

	days, err := pbrates.NewDayCount(n)
	if err != nil {
		return 0, DayCountRangeMsg
	}

	return days, ""
}
