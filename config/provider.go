package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tmc/overlay"
)

// Provider serves overlay labels from viper. It implements overlay.Constants.
//
// Labels returns a snapshot taken at load time and refreshed whenever the
// config file changes on disk, so a running Coordinator picks up edited labels
// on its next call.
type Provider struct {
	v   *viper.Viper
	log *zap.SugaredLogger

	mu     sync.RWMutex
	labels overlay.Labels
}

var _ overlay.Constants = (*Provider)(nil)

// Constants returns a Provider backed by the viper instance cfg was loaded
// from. A Config not produced by LoadConfig yields a Provider with cfg.Labels.
func (cfg *Config) Constants(log *zap.SugaredLogger) *Provider {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	p := &Provider{v: cfg.v, log: log, labels: cfg.Labels}
	if p.v != nil {
		p.reload()
	}
	return p
}

// Labels implements overlay.Constants.
func (p *Provider) Labels() overlay.Labels {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.labels
}

// Watch starts watching the config file. onChange, if non-nil, runs on the
// watcher goroutine after the labels have been refreshed.
func (p *Provider) Watch(onChange func(overlay.Labels)) {
	if p.v == nil || p.v.ConfigFileUsed() == "" {
		p.log.Debug("no config file to watch")
		return
	}
	p.v.OnConfigChange(func(e fsnotify.Event) {
		p.log.Infow("config changed", "file", e.Name, "op", e.Op.String())
		l := p.reload()
		if onChange != nil {
			onChange(l)
		}
	})
	p.v.WatchConfig()
}

func (p *Provider) reload() overlay.Labels {
	l := labelsFrom(p.v)
	p.mu.Lock()
	p.labels = l
	p.mu.Unlock()
	return l
}

// labelsFrom reads each label key separately; viper does not merge nested
// maps across defaults, file, env and flags when asked for the parent key.
func labelsFrom(v *viper.Viper) overlay.Labels {
	return overlay.Labels{
		Direction:          v.GetString("labels.direction"),
		OK:                 v.GetString("labels.ok"),
		Cancel:             v.GetString("labels.cancel"),
		MessageTitle:       v.GetString("labels.messageTitle"),
		WarningTitle:       v.GetString("labels.warningTitle"),
		SaveAndContinue:    v.GetString("labels.saveAndContinue"),
		DiscardAndContinue: v.GetString("labels.discardAndContinue"),
		UnsavedChanges:     v.GetString("labels.unsavedChanges"),
	}
}
