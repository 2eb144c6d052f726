package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/common"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

var errNoPassword = errors.New("no password on stdin")

// ReadPasswordStdin reads the password from in. When in is a terminal the
// user is prompted on w and the input is not echoed; otherwise the first line
// is taken with its line ending removed.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func ReadPasswordStdin(in io.Reader, w io.Writer) ([]byte, error) {
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
			return nil, err
		}
		pw, err := readPassword(int(f.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return nil, err
		}
		if len(pw) == 0 {
			return nil, errNoPassword
		}
		return pw, nil
	}

	line, err := bufio.NewReader(in).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		common.WipeByteArray(line)
		return nil, err
	}
	pw := common.TrimLineEnding(line)
	if len(pw) == 0 {
		return nil, errNoPassword
	}
	return pw, nil
}
