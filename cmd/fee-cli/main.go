// Command fee-cli runs process_transaction over a transcript and
// budget read from local JSON or YAML files, for offline inspection without
// standing up feesimd.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/genlayerlabs/fee-simulator/core/invariants"
	"github.com/genlayerlabs/fee-simulator/core/pipeline"
	"github.com/genlayerlabs/fee-simulator/core/types"
	"github.com/genlayerlabs/fee-simulator/export"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		runCommand(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fee-cli run [--verbose] [--debug] [--export out.parquet] <transcript.json> <budget.json>")
}

type transcriptFile struct {
	Addresses []string        `json:"addresses" yaml:"addresses"`
	Rounds    [][]rotationRow `json:"rounds" yaml:"rounds"`
}

type rotationRow struct {
	Votes []struct {
		Address string `json:"address" yaml:"address"`
		Kind    string `json:"kind" yaml:"kind"`
		Tag     string `json:"tag" yaml:"tag"`
		Hash    string `json:"hash" yaml:"hash"`
	} `json:"votes" yaml:"votes"`
}

type budgetFile struct {
	LeaderTimeout     uint64   `json:"leader_timeout" yaml:"leader_timeout"`
	ValidatorsTimeout uint64   `json:"validators_timeout" yaml:"validators_timeout"`
	AppealRounds      uint64   `json:"appeal_rounds" yaml:"appeal_rounds"`
	Rotations         []uint64 `json:"rotations" yaml:"rotations"`
	SenderAddress     string   `json:"sender_address" yaml:"sender_address"`
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "print every emitted event")
	debug := fs.Bool("debug", false, "print the label assigned to each round")
	exportPath := fs.String("export", "", "write the event log to this Parquet file")
	fs.Parse(args)

	if fs.NArg() < 2 {
		usage()
		os.Exit(1)
	}

	transcript, err := loadTranscript(fs.Arg(0))
	if err != nil {
		fatalf("loading transcript: %v", err)
	}
	budget, err := loadBudget(fs.Arg(1))
	if err != nil {
		fatalf("loading budget: %v", err)
	}

	addresses := make([]types.Address, len(transcript.Addresses))
	for i, a := range transcript.Addresses {
		addr, err := types.ParseAddress(a)
		if err != nil {
			fatalf("invalid address %q: %v", a, err)
		}
		addresses[i] = addr
	}

	var rounds []types.Round
	for _, rotations := range transcript.Rounds {
		var typedRotations []types.Rotation
		for _, rot := range rotations {
			var entries []types.VoteEntry
			for _, v := range rot.Votes {
				addr, err := types.ParseAddress(v.Address)
				if err != nil {
					fatalf("invalid voter address %q: %v", v.Address, err)
				}
				vote, err := decodeVote(v.Kind, v.Tag, v.Hash)
				if err != nil {
					fatalf("invalid vote: %v", err)
				}
				entries = append(entries, types.VoteEntry{Address: addr, Vote: vote})
			}
			rotation, err := types.NewRotation(entries, nil)
			if err != nil {
				fatalf("invalid rotation: %v", err)
			}
			typedRotations = append(typedRotations, rotation)
		}
		round, err := types.NewRound(typedRotations)
		if err != nil {
			fatalf("invalid round: %v", err)
		}
		rounds = append(rounds, round)
	}
	results, err := types.NewTransactionRoundResults(rounds)
	if err != nil {
		fatalf("invalid transcript: %v", err)
	}

	sender, err := types.ParseAddress(budget.SenderAddress)
	if err != nil {
		fatalf("invalid sender address: %v", err)
	}
	txBudget, err := types.NewTransactionBudget(
		budget.LeaderTimeout, budget.ValidatorsTimeout, budget.AppealRounds,
		budget.Rotations, sender, nil, types.StakingConstant, nil, nil,
	)
	if err != nil {
		fatalf("invalid budget: %v", err)
	}

	events, labels, err := pipeline.ProcessTransaction(addresses, results, txBudget)
	if err != nil {
		fatalf("process_transaction failed: %v", err)
	}

	if *debug {
		for i, l := range labels {
			fmt.Printf("round %d: %s\n", i, l)
		}
	}
	if *verbose {
		for _, ev := range events {
			fmt.Printf("#%d %s cost=%d staked=%d earned=%d slashed=%d burned=%d\n",
				ev.SequenceID, ev.Address, ev.Cost, ev.Staked, ev.Earned, ev.Slashed, ev.Burned)
		}
	}

	honestParties := []types.Address{sender}
	if err := invariants.CheckAll(events, labels, results.Len(), honestParties); err != nil {
		fatalf("invariant check failed: %v", err)
	}

	if *exportPath != "" {
		if err := export.WriteLedger(*exportPath, events); err != nil {
			fatalf("export failed: %v", err)
		}
	}

	summary := fmt.Sprintf("processed %d rounds, %d events, labels=%v", results.Len(), len(events), labels)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		summary = "\033[32m" + summary + "\033[0m"
	}
	fmt.Println(summary)
}

func decodeVote(kind, tag, hash string) (types.Vote, error) {
	h, err := types.ParseHash(hash)
	if err != nil {
		return types.Vote{}, err
	}
	var t types.VoteTag
	switch tag {
	case "AGREE":
		t = types.TagAgree
	case "DISAGREE":
		t = types.TagDisagree
	case "TIMEOUT":
		t = types.TagTimeout
	case "IDLE":
		t = types.TagIdle
	default:
		t = types.TagNA
	}
	switch kind {
	case "leader_timeout":
		return types.NewLeaderTimeoutVote(), nil
	case "leader_receipt":
		return types.NewLeaderReceiptVote(t, h), nil
	case "validator_with_hash":
		return types.NewValidatorWithHashVote(t, h), nil
	default:
		return types.NewPlainVote(t), nil
	}
}

// loadTranscript accepts either JSON or YAML, chosen by file extension, so
// a transcript fixture can be hand-edited without fighting JSON's syntax.
func loadTranscript(path string) (transcriptFile, error) {
	var t transcriptFile
	data, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if isYAMLPath(path) {
		return t, yaml.Unmarshal(data, &t)
	}
	return t, json.Unmarshal(data, &t)
}

func loadBudget(path string) (budgetFile, error) {
	var b budgetFile
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if isYAMLPath(path) {
		return b, yaml.Unmarshal(data, &b)
	}
	return b, json.Unmarshal(data, &b)
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
