// Package database provides the relational data access layer.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── pessoas/         # Pessoa identity records
//	└── accounts/        # Auxiliary Account records
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase(cfg.Database)
//
//	// Create domain-specific repositories
//	pessoaRepo := pessoas.NewRepository(db.DB)
//	accountRepo := accounts.NewRepository(db.DB)
//
//	// Use repositories
//	pessoa, err := pessoaRepo.GetByEmail(ctx, "ana@example.com")
//
// # Interface Implementations
//
// The repositories implement the store interfaces declared by their
// consumers rather than interfaces of their own:
//
//   - pessoas.Repository: implements sync.PessoaStore and auth.PessoaStore
//   - accounts.Repository: implements sync.AccountStore
//
// Declaring the interfaces on the consumer side keeps the synchronizer
// and the auth service testable against in-memory fakes.
package database
