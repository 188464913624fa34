package relocate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ConfirmPrompt is written before reading the operator's answer.
const ConfirmPrompt = "Do you wish to continue? (Y/N) "

// Confirm asks the operator whether to proceed. When enabled is false it
// returns true without prompting. Otherwise it reads one line from in and
// accepts a line whose first character is y or Y; end of input counts as
// no. Leading whitespace is not skipped.
func Confirm(in io.Reader, out io.Writer, enabled bool) (bool, error) {
	if !enabled {
		return true, nil
	}
	if in == nil {
		return false, nil
	}
	if out != nil {
		if _, err := fmt.Fprint(out, ConfirmPrompt); err != nil {
			return false, err
		}
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.TrimRight(line, "\r\n")
	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "Y"), nil
}
