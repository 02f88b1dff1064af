package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zostay/go-eml"
	"github.com/zostay/go-eml/internal/logger"
	"github.com/zostay/go-eml/message/address"
	"github.com/zostay/go-eml/message/header"
)

var (
	readCmd = &cobra.Command{
		Use:   "read message",
		Short: "Prints the flattened form of a message as a document",
		Args:  cobra.ExactArgs(1),
		RunE:  RunRead,
	}

	strict bool
)

func init() {
	readCmd.Flags().BoolVar(&strict, "strict", false, "fail unless every address is a valid RFC 5322 mailbox")
}

// addressFields are checked by --strict.
var addressFields = []string{header.From, header.To, header.Cc, header.ReplyTo, header.Bcc}

// checkAddresses returns an error for every address field whose raw body is
// not an RFC 5322 address-list and for every decoded address that is not a
// strict mailbox.
func checkAddresses(e *eml.Email) error {
	var errs []error
	for _, name := range addressFields {
		body, err := e.Header.GetFirst(name)
		if err != nil {
			continue
		}

		if _, err := header.ParseAddressListStrict(body); err != nil {
			salvaged, _ := e.Header.GetAddressList(name)
			errs = append(errs, fmt.Errorf("%s header %q, read leniently as %q: %w", name, body, salvaged.String(), err))
		}
	}

	for _, l := range []struct {
		name string
		list address.List
	}{
		{header.From, e.From},
		{header.To, e.To},
		{header.Cc, e.Cc},
	} {
		for _, a := range l.list {
			if _, err := a.Mailbox(); err != nil {
				errs = append(errs, fmt.Errorf("%s address %q: %w", l.name, a.String(), err))
			}
		}
	}
	return errors.Join(errs...)
}

func RunRead(cmd *cobra.Command, args []string) error {
	m, err := parseFile(cmd, args[0])
	if err != nil {
		return err
	}

	e, err := eml.Read(m, eml.WithReadLogger(logger.FromContext(cmd.Context())))
	if err != nil {
		return err
	}

	if strict {
		if err := checkAddresses(e); err != nil {
			return err
		}
	}

	return writeDocument(cmd.OutOrStdout(), newEmailDoc(e))
}
