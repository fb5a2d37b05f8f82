package adapter

import "time"

const DEFAULT_AVATAR_BASE = "https://api.dicebear.com/7.x/avataaars/svg"

type Option func(*options)

type options struct {
	lang       string
	avatarBase string
	loc        *time.Location
}

func newOptions(opts []Option) options {
	o := options{
		lang:       "en",
		avatarBase: DEFAULT_AVATAR_BASE,
		loc:        time.UTC,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLang picks the date layout, e.g. "en" or "zh-CN".
func WithLang(lang string) Option {
	return func(o *options) {
		if lang != "" {
			o.lang = lang
		}
	}
}

func WithAvatarBase(base string) Option {
	return func(o *options) {
		if base != "" {
			o.avatarBase = base
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}
