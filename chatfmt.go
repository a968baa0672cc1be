// Copyright (c) 2012-2014 Jeremy Latt
// Copyright (c) 2014-2015 Edmund Huber
// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// Copyright (c) 2026 chatfmt contributors
// released under the MIT license

package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/ergochat/irc-go/ircfmt"
	"golang.org/x/term"

	"github.com/ergochat/chatfmt/irc"
	"github.com/ergochat/chatfmt/irc/logger"
)

// set via linker flags, either by make or by goreleaser:
var commit = ""  // git hash
var version = "" // tagged version

const defaultConfigFile = "chatfmt.yaml"

func fileDoesNotExist(file string) bool {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return true
	}
	return false
}

// forEachInput calls handler on the text given on the command line, or
// failing that, on each line of stdin.
func forEachInput(texts []string, handler func(string) error) (err error) {
	if len(texts) != 0 {
		return handler(strings.Join(texts, " "))
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if interactive {
			fmt.Fprint(os.Stderr, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if handlerErr := handler(strings.TrimSuffix(scanner.Text(), "\r")); handlerErr != nil {
			err = handlerErr
		}
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return scanErr
	}
	return err
}

func printLine(line string) error {
	fmt.Println(line)
	return nil
}

func main() {
	irc.SetVersionString(version, commit)
	usage := `chatfmt.
Usage:
	chatfmt encode [--conf <filename>] [--markdown-only] [<text>...]
	chatfmt tokens [--conf <filename>] [--markdown-only] [<text>...]
	chatfmt privmsg <target> [--conf <filename>] [--markdown-only] [<text>...]
	chatfmt notice <target> [--conf <filename>] [--markdown-only] [<text>...]
	chatfmt strip [<text>...]
	chatfmt escape [<text>...]
	chatfmt unescape [<text>...]
	chatfmt -h | --help
	chatfmt --version
Options:
	--conf <filename>  Configuration file to use [default: chatfmt.yaml].
	--markdown-only    Don't interpret dollar-codes such as $b and $c4,1.
	-h --help          Show this screen.
	--version          Show version.`

	arguments, _ := docopt.ParseArgs(usage, nil, irc.Ver)
	texts, _ := arguments["<text>"].([]string)

	// these operate on wire text and don't need a config file
	var rawHandler func(string) string
	if arguments["strip"].(bool) {
		rawHandler = ircfmt.Strip
	} else if arguments["escape"].(bool) {
		rawHandler = ircfmt.Escape
	} else if arguments["unescape"].(bool) {
		rawHandler = ircfmt.Unescape
	}
	if rawHandler != nil {
		err := forEachInput(texts, func(text string) error {
			return printLine(rawHandler(text))
		})
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	configfile := arguments["--conf"].(string)
	if configfile == defaultConfigFile && fileDoesNotExist(configfile) {
		configfile = ""
	}
	config, err := irc.LoadConfig(configfile)
	if err != nil {
		log.Fatal("Config file did not load successfully: ", err.Error())
	}

	logman, err := logger.NewManager(config.Logging)
	if err != nil {
		log.Fatal("Logger did not load successfully:", err.Error())
	}
	defer logman.Close()
	if config.Filename != "" {
		logman.Debug("config", "loaded", config.Filename)
	}

	composer := irc.NewComposer(config, logman)
	markdownOnly := arguments["--markdown-only"].(bool)

	var handler func(string) error
	if arguments["encode"].(bool) {
		handler = func(text string) error {
			return printLine(composer.Encode(text, markdownOnly))
		}
	} else if arguments["tokens"].(bool) {
		handler = func(text string) error {
			for _, token := range composer.Tokens(text, markdownOnly) {
				printLine(token.String())
			}
			return nil
		}
	} else if arguments["privmsg"].(bool) || arguments["notice"].(bool) {
		command := irc.PrivmsgCommand
		if arguments["notice"].(bool) {
			command = irc.NoticeCommand
		}
		target := arguments["<target>"].(string)
		handler = func(text string) error {
			lines, err := composer.Compose(command, target, text, markdownOnly)
			if err != nil {
				logman.Error("cli", fmt.Sprintf("Could not compose message: %s", err.Error()))
				return err
			}
			for _, line := range lines {
				printLine(line)
			}
			return nil
		}
	}

	if err := forEachInput(texts, handler); err != nil {
		logman.Close()
		os.Exit(1)
	}
}
