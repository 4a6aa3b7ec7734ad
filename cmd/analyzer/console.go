package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spacesedan/commentlens/internal/models"
	"github.com/spacesedan/commentlens/internal/pipeline"
)

var (
	positiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	negativeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	neutralStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

const helpText = `Type a comment and press enter to analyze it.
  /category [name]   show or set the product category
  /channel [name]    show or set the contact channel
  /customer [id]     set the customer id (empty clears it)
  /history           list this session's analyses
  /stats             show session counts
  /quit              exit`

// console is the terminal front end of one analysis session.
type console struct {
	session  *pipeline.Session
	in       *bufio.Reader
	out      io.Writer
	category string
	channel  string
	customer string
}

func newConsole(session *pipeline.Session, in io.Reader, out io.Writer) *console {
	return &console{
		session:  session,
		in:       bufio.NewReader(in),
		out:      out,
		category: models.Categories[0],
		channel:  models.Channels[0],
	}
}

var errQuit = errors.New("quit")

// Run reads lines until EOF, /quit or ctx is cancelled.
func (c *console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, helpText)
	c.printSelection()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, "> ")
		line, readErr := c.readLine()
		if line == "" && readErr != nil {
			return eofIsDone(readErr)
		}

		err := c.handle(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if readErr != nil {
			return eofIsDone(readErr)
		}
	}
}

// readLine returns the next line without its terminator. Lines have no length
// limit; a final line without a newline is returned together with io.EOF.
func (c *console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

func eofIsDone(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *console) handle(ctx context.Context, line string) error {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "/") {
		c.analyze(ctx, line)
		return nil
	}

	cmd, arg, _ := strings.Cut(trimmed, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/category":
		c.category = c.choose("category", arg, c.category, models.Categories)
	case "/channel":
		c.channel = c.choose("channel", arg, c.channel, models.Channels)
	case "/customer":
		c.customer = arg
		c.printSelection()
	case "/history":
		c.printHistory()
	case "/stats":
		s := c.session.Stats()
		fmt.Fprintf(c.out, "total: %d  %s: %d  %s: %d  %s: %d\n", s.Total,
			positiveStyle.Render(string(models.SentimentPositive)), s.Positives,
			negativeStyle.Render(string(models.SentimentNegative)), s.Negatives,
			neutralStyle.Render(string(models.SentimentNeutral)), s.Neutrals)
	case "/quit", "/exit":
		return errQuit
	case "/help":
		fmt.Fprintln(c.out, helpText)
	default:
		fmt.Fprintf(c.out, "unknown command %s, try /help\n", cmd)
	}
	return nil
}

// choose validates a catalog value. Without an argument it lists the options.
func (c *console) choose(name, arg, current string, options []string) string {
	if arg == "" {
		fmt.Fprintf(c.out, "%s options: %s\n", name, strings.Join(options, ", "))
		return current
	}
	for _, opt := range options {
		if strings.EqualFold(opt, arg) {
			fmt.Fprintf(c.out, "%s set to %s\n", name, opt)
			return opt
		}
	}
	fmt.Fprintf(c.out, "unknown %s %q; options: %s\n", name, arg, strings.Join(options, ", "))
	return current
}

func (c *console) analyze(ctx context.Context, text string) {
	res, err := c.session.Analyze(ctx, models.AnalysisRequest{
		Text:       text,
		Category:   c.category,
		Channel:    c.channel,
		CustomerID: c.customer,
	})
	if errors.Is(err, models.ErrValidation) {
		fmt.Fprintln(c.out, warnStyle.Render("Please enter a comment to analyze."))
		return
	}
	if err != nil {
		fmt.Fprintln(c.out, warnStyle.Render(err.Error()))
		return
	}

	fmt.Fprintf(c.out, "%s  polarity %.2f\n", sentimentLabel(res.Sentiment), res.Polarity)
	if res.NormalizedText != text {
		fmt.Fprintln(c.out, dimStyle.Render("original:   "+text))
		fmt.Fprintln(c.out, dimStyle.Render("translated: "+res.NormalizedText))
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(c.out, warnStyle.Render("warning: "+w))
	}
}

func (c *console) printSelection() {
	customer := c.customer
	if customer == "" {
		customer = models.UnknownCustomer
	}
	fmt.Fprintln(c.out, dimStyle.Render(fmt.Sprintf("category: %s | channel: %s | customer: %s",
		c.category, c.channel, customer)))
}

func (c *console) printHistory() {
	rows := c.session.History()
	if len(rows) == 0 {
		fmt.Fprintln(c.out, "no analyses yet")
		return
	}
	for _, r := range rows {
		fmt.Fprintf(c.out, "%s  %-8s %5s  %-17s %-14s %-8s %s\n",
			r.Timestamp, sentimentLabel(r.Sentiment), r.Polarity,
			r.Category, r.Channel, r.CustomerID, r.OriginalText)
	}
}

func sentimentLabel(s models.Sentiment) string {
	switch s {
	case models.SentimentPositive:
		return positiveStyle.Render(string(s))
	case models.SentimentNegative:
		return negativeStyle.Render(string(s))
	default:
		return neutralStyle.Render(string(s))
	}
}
