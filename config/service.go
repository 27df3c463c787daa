package config

// Name implements service.Service.
func (s *Store) Name() string {
	return "config"
}

// Dependencies implements service.Service.
func (s *Store) Dependencies() []string {
	return nil
}

// Init implements service.Service.
// args[0]: bool - watch the file for changes (default true)
func (s *Store) Init(args ...any) error {
	s.watch = true
	if len(args) > 0 {
		if watch, ok := args[0].(bool); ok {
			s.watch = watch
		}
	}
	return nil
}

// Start implements service.Service: loads the file and starts the watcher.
func (s *Store) Start() error {
	if _, err := s.Load(); err != nil {
		return err
	}
	if !s.watch {
		return nil
	}
	return s.Watch()
}

// Stop implements service.Service.
func (s *Store) Stop() error {
	return s.Close()
}
