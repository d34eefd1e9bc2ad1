package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

type commandKind int

const (
	cmdPlant commandKind = iota
	cmdHarvest
	cmdBuy
	cmdSell
	cmdUnlock
	cmdSync
	cmdState
	cmdHelp
	cmdQuit
)

type command struct {
	kind     commandKind
	args     []string
	itemType domain.ItemType
	itemCode string
	quantity int
}

var commandArity = map[string]struct {
	kind  commandKind
	arity int
}{
	"plant":   {cmdPlant, 2},
	"harvest": {cmdHarvest, 1},
	"buy":     {cmdBuy, 3},
	"sell":    {cmdSell, 3},
	"unlock":  {cmdUnlock, 1},
	"sync":    {cmdSync, 0},
	"state":   {cmdState, 0},
	"help":    {cmdHelp, 0},
	"quit":    {cmdQuit, 0},
	"exit":    {cmdQuit, 0},
}

// parseCommand turns one input line into a command
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{kind: cmdHelp}, nil
	}

	spec, ok := commandArity[strings.ToLower(fields[0])]
	if !ok {
		return command{}, fmt.Errorf("unknown command %q, try help", fields[0])
	}
	args := fields[1:]
	if len(args) != spec.arity {
		return command{}, fmt.Errorf("%s expects %d argument(s), got %d", fields[0], spec.arity, len(args))
	}

	cmd := command{kind: spec.kind, args: args}
	if spec.kind == cmdBuy || spec.kind == cmdSell {
		itemType := domain.ItemType(strings.ToLower(args[0]))
		if !itemType.Tradable() {
			return command{}, fmt.Errorf("%s: %s", domain.ErrMsgInvalidItemType, args[0])
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil || qty <= 0 {
			return command{}, fmt.Errorf("quantity must be a positive integer, got %q", args[2])
		}
		cmd.itemType = itemType
		cmd.itemCode = args[1]
		cmd.quantity = qty
	}
	return cmd, nil
}
