package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/waitlist"
)

type WaitlistServeCmd struct {
	Config string `help:"YAML config file." type:"path"`
	Addr   string `help:"Listen address, overrides the config (host:port)."`
}

func (c *WaitlistServeCmd) Run(ctx *Context) error {
	cfg, err := waitlist.Load(c.Config)
	if err != nil {
		return err
	}

	url, err := waitlist.ResolveWebhookURL(cfg)
	if errors.Is(err, waitlist.ErrNotFound) {
		logger.Warn("No webhook URL configured, sign-ups will not be forwarded")
	} else if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	srv := waitlist.New(waitlist.NewNotifier(url, cfg.Webhook.Timeout), reg)

	addr := cfg.Server.Addr()
	if c.Addr != "" {
		addr = c.Addr
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(sigCtx, addr)
}

type WaitlistSetWebhookCmd struct {
	URL string `arg:"" help:"Webhook URL that receives new subscribers."`
}

func (c *WaitlistSetWebhookCmd) Run(ctx *Context) error {
	if err := waitlist.SetWebhookURL(c.URL); err != nil {
		return err
	}
	fmt.Println("✓ Webhook URL stored in the OS keyring")
	return nil
}

type WaitlistClearWebhookCmd struct{}

func (c *WaitlistClearWebhookCmd) Run(ctx *Context) error {
	err := waitlist.DeleteWebhookURL()
	if errors.Is(err, waitlist.ErrNotFound) {
		fmt.Println("No webhook URL stored")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("✓ Webhook URL removed from the OS keyring")
	return nil
}
