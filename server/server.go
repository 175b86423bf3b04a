package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hashicorp/go-multierror"
	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/sonderworks/beacon/blog"
	"github.com/sonderworks/beacon/cms"
	"github.com/sonderworks/beacon/config"
	"github.com/sonderworks/beacon/landing"
	"github.com/sonderworks/beacon/leads"
	"github.com/sonderworks/beacon/log"
	"github.com/sonderworks/beacon/notifier"
	"github.com/sonderworks/beacon/ocr"
	"github.com/sonderworks/beacon/renderer"
)

type Server struct {
	c   *config.Config
	n   notifier.Notifier
	log *zap.SugaredLogger

	cms      *cms.Client
	locales  *landing.Locales
	resolver *landing.Resolver
	sections *landing.SectionRenderer
	renderer *renderer.Renderer

	blog       *blog.Storage
	leadsStore *leads.Store
	forwarder  *leads.Forwarder
	extractor  *ocr.Extractor

	jwtAuth *jwtauth.JWTAuth
	cron    *cron.Cron
	server  *http.Server
}

func NewServer(c *config.Config) (*Server, error) {
	var n notifier.Notifier
	if c.Notifications.Telegram != nil {
		telegram, err := notifier.NewTelegramNotifier(c.Notifications.Telegram)
		if err != nil {
			return nil, err
		}
		n = telegram
	} else {
		n = notifier.NewLogNotifier()
	}

	rend, err := renderer.NewRenderer(c.Site)
	if err != nil {
		return nil, err
	}

	cmsClient := cms.NewClient(&c.CMS)

	leadsStore, err := leads.NewStore(filepath.Join(c.DataDirectory, "leads.db"))
	if err != nil {
		return nil, err
	}

	s := &Server{
		c:   c,
		n:   n,
		log: log.S().Named("server"),

		cms:      cmsClient,
		locales:  landing.NewLocales(c.Site.DefaultLocale, c.Site.Locales),
		resolver: landing.NewResolver(cmsClient),
		sections: landing.NewSectionRenderer(rend.SectionHandlers()),
		renderer: rend,

		blog:       blog.NewStorage(afero.NewOsFs(), filepath.Join(c.SourceDirectory, "posts")),
		leadsStore: leadsStore,
		forwarder:  leads.NewForwarder(&c.CMS),

		jwtAuth: jwtauth.New("HS256", []byte(c.TokensSecret), nil),
		cron:    cron.New(),
	}

	if c.OCR != nil {
		extractor, err := ocr.NewExtractor(context.Background(), c.OCR)
		if err != nil {
			return nil, err
		}
		s.extractor = extractor
	}

	var errs *multierror.Error
	errs = multierror.Append(
		errs,
		s.registerCron("00 04 * * *", "Blog Reindex", s.blog.Reindex),
		s.registerCron("00 03 * * *", "Content Cache Purge", func() error {
			s.cms.PurgeCache()
			return nil
		}),
	)

	return s, errs.ErrorOrNil()
}

func (s *Server) registerCron(schedule, name string, job func() error) error {
	_, err := s.cron.AddFunc(schedule, func() {
		err := job()
		if err != nil {
			s.n.Error(fmt.Errorf("%s cron job: %w", name, err))
		}
	})
	return err
}

func (s *Server) Start() error {
	err := s.blog.Reindex()
	if err != nil {
		s.log.Warnw("initial blog index failed", "err", err)
	}

	s.cron.Start()

	addr := ":" + strconv.Itoa(s.c.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	errCh := make(chan error)
	s.server = &http.Server{Handler: s.makeRouter()}
	go func() {
		s.log.Infof("listening on %s", ln.Addr().String())
		errCh <- s.server.Serve(ln)
	}()

	return <-errCh
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	<-s.cron.Stop().Done()

	var errs *multierror.Error
	errs = multierror.Append(errs, s.server.Shutdown(ctx))
	errs = multierror.Append(errs, s.leadsStore.Close())
	return errs.ErrorOrNil()
}

func (s *Server) withRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil && rvr != http.ErrAbortHandler {
				err := fmt.Errorf("panic while serving %s: %v: %s", r.URL.Path, rvr, string(debug.Stack()))
				s.n.Error(err)
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
