// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for quizcards.
package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdBank
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Query is the topic text for ask.
	Query string
	// Count overrides the configured questions-per-generation.
	Count int
	// ChatID targets an existing chat instead of creating one.
	ChatID string
	// File reads the topic text from a file instead of the arguments.
	File string
	// Email overrides the configured login email.
	Email string
	// Subcommand is the bank subcommand (list, export, sync, stats).
	Subcommand string
	// Output is the export target path.
	Output string
	// Topic filters bank listings.
	Topic string
	// JSON switches ask output to raw JSON.
	JSON bool

	// Raw holds the remaining unparsed arguments.
	Raw []string
}

const usageText = `quizcards - generador de preguntas tipo test en la terminal

Uso:
  quizcards                       Iniciar la interfaz de chat (TUI)
  quizcards ask "<tema>"          Generar preguntas sobre un tema y salir
  quizcards bank [subcomando]     Gestionar el banco local de preguntas
  quizcards version               Mostrar la versión
  quizcards help                  Mostrar esta ayuda

Subcomandos de bank:
  list             Listar las preguntas guardadas
  export <ruta>    Exportar el banco a Markdown
  sync             Sincronizar con las preguntas del servidor
  stats            Mostrar el tamaño del banco

Opciones de ask:
  --count <n>      Número de preguntas (1-20)
  --chat <id>      Guardar en un chat existente en lugar de crear uno
  --file <ruta>    Leer el tema desde un archivo
  --email <email>  Correo de inicio de sesión
  --json           Imprimir la respuesta como JSON

Credenciales:
  Se piden por consola; QUIZCARDS_EMAIL y QUIZCARDS_PASSWORD
  las fijan sin preguntar.`

// Parse inspects os.Args-style arguments (without the program name)
// and returns the command to run plus its parsed arguments.
func Parse(argv []string) (Command, *Args) {
	args := &Args{}
	if len(argv) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(argv[0])
	rest := argv[1:]

	switch cmd {
	case "ask", "a":
		parser := NewArgParser(rest)
		args.Query = strings.Join(parser.Positional(), " ")
		// --num is the historical spelling of --count.
		args.Count = parser.FlagIntOrDefault("count", parser.FlagIntOrDefault("num", 0))
		args.ChatID = parser.Flag("chat")
		args.File = parser.Flag("file")
		args.Email = parser.Flag("email")
		args.JSON = parser.BoolFlag("json")
		args.Raw = rest
		return CmdAsk, args

	case "bank", "b":
		parser := NewArgParser(rest)
		args.Subcommand = parser.Subcommand()
		args.Topic = parser.Flag("topic")
		args.Email = parser.Flag("email")
		if p := parser.PositionalFrom(1); len(p) > 0 {
			args.Output = p[0]
		}
		args.Raw = rest
		return CmdBank, args

	case "version", "ver", "-v", "--version":
		return CmdVersion, args

	case "help", "h", "-h", "--help":
		return CmdHelp, args

	default:
		// Unrecognized first argument: treat the whole line as an ask
		// query so `quizcards fotosíntesis` does the obvious thing.
		args.Query = strings.Join(argv, " ")
		args.Raw = argv
		return CmdAsk, args
	}
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("quizcards %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// HandleHelp prints the usage text.
func HandleHelp() {
	fmt.Println(usageText)
}
