// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command demoinfo is a thin command-line interface to the demo package:
// inspecting a demo file's contents, serving its blocks to the first
// client that connects on a TCP address, and verifying that it
// round-trips byte-for-byte.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"os"

	"github.com/op/go-logging"
	"github.com/urfave/cli"

	"github.com/quakedemo/demo"
	"github.com/quakedemo/demo/internal/framing"
	"github.com/quakedemo/demo/relay"
)

var log = setupLogging("demoinfo")

func setupLogging(prefix string) *logging.Logger {
	format := logging.MustStringFormatter(
		`%{time:15:04:05.000} %{level:.4s} ▶ %{message}`,
	)
	backend := logging.NewLogBackend(os.Stderr, prefix+": ", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	level := logging.INFO
	if lvl, err := logging.LogLevel(os.Getenv("DEMOINFO_LOG_LEVEL")); err == nil {
		level = lvl
	}
	leveled.SetLevel(level, prefix)
	logging.SetBackend(leveled)
	return logging.MustGetLogger(prefix)
}

func main() {
	app := cli.NewApp()
	app.Name = "demoinfo"
	app.Usage = "inspect, relay, and verify Quake engine demo files"
	app.Commands = []cli.Command{
		inspectCommand,
		relayCommand,
		verifyCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

var inspectCommand = cli.Command{
	Name:      "inspect",
	Usage:     "print block/message counts, protocol, and a per-type histogram as JSON",
	ArgsUsage: "<file>",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.NewExitError("inspect requires a demo file path", 2)
		}

		d, err := demo.ReadFile(path, nil)
		if err != nil {
			return cli.NewExitError(err.Error(), codeForError(err))
		}
		log.Infof("read %d blocks, protocol %s", len(d.Blocks), d.Protocol)

		summary := summarize(d)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	},
}

type demoSummary struct {
	Protocol       string         `json:"protocol"`
	Track          int32          `json:"track"`
	BlockCount     int            `json:"block_count"`
	MessageCount   int            `json:"message_count"`
	MessagesByType map[string]int `json:"messages_by_type"`
}

func summarize(d *demo.Demo) demoSummary {
	s := demoSummary{
		Protocol:       d.Protocol.String(),
		Track:          d.Track,
		BlockCount:     len(d.Blocks),
		MessagesByType: map[string]int{},
	}
	for i := range d.Blocks {
		for j := range d.Blocks[i].Messages {
			s.MessageCount++
			key := fmt.Sprintf("0x%02x", d.Blocks[i].Messages[j].Type)
			s.MessagesByType[key]++
		}
	}
	return s
}

var relayCommand = cli.Command{
	Name:      "relay",
	Usage:     "read a demo, listen on a TCP address, and relay its blocks to the first client",
	ArgsUsage: "<file> <addr>",
	Action: func(c *cli.Context) error {
		if c.NArg() < 2 {
			return cli.NewExitError("relay requires a demo file path and a listen address", 2)
		}
		path, addr := c.Args().Get(0), c.Args().Get(1)

		d, err := demo.ReadFile(path, nil)
		if err != nil {
			return cli.NewExitError(err.Error(), codeForError(err))
		}

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer ln.Close()
		log.Infof("listening on %s, relaying %d blocks from %s", ln.Addr(), len(d.Blocks), path)

		conn, err := ln.Accept()
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer conn.Close()

		var upstream bytes.Buffer
		framed := framing.NewWriter(&upstream, framing.WithWriteLocal())
		for i := range d.Blocks {
			encoded, err := relay.Encode(&d.Blocks[i])
			if err != nil {
				return cli.NewExitError(err.Error(), 1)
			}
			if _, err := framed.Write(encoded); err != nil {
				return cli.NewExitError(err.Error(), 1)
			}
		}

		fwd := relay.NewForwarder(conn, relay.TCP, &upstream, relay.Local)
		for i := range d.Blocks {
			if _, err := fwd.ForwardBlock(); err != nil {
				return cli.NewExitError(err.Error(), 1)
			}
			log.Debugf("relayed block %d/%d", i+1, len(d.Blocks))
		}
		log.Infof("relay complete, protocol %s", fwd.Protocol())
		return nil
	},
}

var verifyCommand = cli.Command{
	Name:      "verify",
	Usage:     "read and re-write a demo file and report whether the bytes differ",
	ArgsUsage: "<file>",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.NewExitError("verify requires a demo file path", 2)
		}

		original, err := os.ReadFile(path)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		d, err := demo.Read(bytes.NewReader(original), nil)
		if err != nil {
			return cli.NewExitError(err.Error(), codeForError(err))
		}

		var rewritten bytes.Buffer
		if err := demo.Write(&rewritten, d, nil); err != nil {
			return cli.NewExitError(err.Error(), codeForError(err))
		}

		if bytes.Equal(original, rewritten.Bytes()) {
			log.Infof("%s round-trips byte-for-byte", path)
			fmt.Println("ok")
			return nil
		}

		log.Warningf("%s does not round-trip byte-for-byte (original %d bytes, rewritten %d bytes)",
			path, len(original), rewritten.Len())
		fmt.Println("differs")
		return cli.NewExitError("round-trip mismatch", 1)
	},
}

func codeForError(err error) int {
	ce, ok := err.(*demo.CodecError)
	if !ok {
		return 1
	}
	return int(ce.Code)
}
