package cmd

import (
	"context"
	"errors"
	"fmt"

	"hamlookup/lib/csvtable"
	"hamlookup/lib/exitcode"
	"hamlookup/lib/qrz"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(qrzCmd)
}

var qrzCmd = &cobra.Command{
	Use:   "qrz",
	Short: "Polls the QRZ XML database server with a list of callsigns and appends records carrying an email address to a CSV table.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		printInstructions()
		ready, err := confirmReady()
		if err != nil {
			fail(err)
		}
		if !ready {
			return
		}

		callsigns, err := qrz.ReadCallsigns(config.Qrz.CallsFile)
		if errors.Is(err, qrz.ErrNoInputList) {
			fmt.Printf("*** Callsign input file %s does not exist.\n", config.Qrz.CallsFile)
			fmt.Println("Create the file and place it in the working directory.")
			exit(exitcode.MissingInput)
		}
		if err != nil {
			fail(err)
		}

		client := qrz.NewClient(qrz.ClientOptions{BaseURL: config.Qrz.BaseURL})
		session := qrz.NewSession(qrz.KeyCache{Path: config.Qrz.KeyFile})

		resumed, err := session.Resume()
		if err != nil {
			fail(err)
		}
		if resumed {
			fmt.Println("Session key retrieved from file...")
		} else {
			fmt.Println("*** Session key file not found, logging in...")
			login(ctx, client, session)
		}

		sink := &csvtable.Writer{
			Path:   config.Qrz.TableFile,
			Header: qrz.HeaderRow(),
		}
		if err := sink.EnsureHeader(); err != nil {
			fail(err)
		}

		harvester := &qrz.Harvester{
			Fetcher: client,
			Session: session,
			Sink:    sink,
			Observe: func(label, value string) {
				fmt.Printf("%s: %s\n", label, value)
			},
		}
		result, err := harvester.Run(ctx, callsigns)
		if err != nil {
			fail(err)
		}
		fmt.Printf("\nProcessed %d records, %d saved to %s\n", result.Processed, result.Appended, config.Qrz.TableFile)
	},
}

// login runs the authentication exchange. The login phase accumulates exit
// bits: a reported server error (bit 1) and a missing session key (bit 2)
// can combine in one run, while a missing envelope exits on its own first.
func login(ctx context.Context, client *qrz.Client, session *qrz.Session) {
	username, password, quit, err := promptCredentials()
	if err != nil {
		fail(err)
	}
	if quit {
		exit(0)
	}

	raw, err := client.Login(ctx, username, password)
	if err != nil {
		fail(err)
	}

	cls := qrz.Classify(raw)
	if cls.Outcome == qrz.NoResponse {
		fail(qrz.ErrNoResponse)
	}

	fmt.Println("Connected to the QRZ database server...")
	if cls.Timestamp != "" {
		fmt.Printf("Session timestamp: %s GMT\n", cls.Timestamp)
	}
	if cls.Remark != "" {
		fmt.Printf("Server remark: %q\n", cls.Remark)
	}
	if cls.Count != "" {
		fmt.Printf("You have used this service %s times today.\n", cls.Count)
	}
	if cls.SubExp != "" {
		fmt.Printf("Subscription expires: %s\n", cls.SubExp)
	}

	code := 0
	if cls.Outcome == qrz.ErrorReported {
		fmt.Printf("*** Server reported an error: %s\n", cls.ServerError)
		code |= exitcode.RemoteError
	}

	err = session.Authenticate(cls)
	if errors.Is(err, qrz.ErrNoSessionKey) {
		fmt.Println("*** No session key returned from the server.")
		code |= exitcode.NoSessionKey
	} else if err != nil {
		fail(err)
	} else {
		fmt.Println("*** Session key saved...")
	}

	if code != 0 {
		exit(code)
	}
}

func printInstructions() {
	fmt.Println()
	fmt.Printf("This program repeatedly polls the QRZ XML database server with the callsigns listed in %s.\n", config.Qrz.CallsFile)
	fmt.Println("Each record is displayed on the console as it is retrieved. Records that contain an email")
	fmt.Printf("address are appended to %s, which can be imported into a spreadsheet as CSV.\n", config.Qrz.TableFile)
	fmt.Println()
	fmt.Println("The program ends if the server returns an error, e.g. \"Not found\" or \"Session Timeout\".")
	fmt.Printf("  - After a \"not found\" error: remove the offending callsign and all callsigns before it from %s, then restart.\n", config.Qrz.CallsFile)
	fmt.Printf("  - After a \"Session Timeout\" error: delete %s and restart to log in again.\n", config.Qrz.KeyFile)
	fmt.Println()
}
