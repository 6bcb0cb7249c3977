package commands

import (
	"fmt"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
	"github.com/spf13/cobra"
)

// NewDomainsCommand creates the domains command group.
func NewDomainsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "domains",
		Aliases: []string{"domain"},
		Short:   "Manage DNS domains",
	}

	cmd.AddCommand(newDomainsListCommand())
	cmd.AddCommand(newDomainsGetCommand())
	cmd.AddCommand(newDomainsCreateCommand())
	cmd.AddCommand(newDomainsDeleteCommand())
	cmd.AddCommand(newDomainsRecordsCommand())

	return cmd
}

func newDomainsListCommand() *cobra.Command {
	var (
		domain     string
		orderBy    string
		descending bool
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			filter, err := buildFilter(linode.TypeDomain, []filterPair{
				{field: "domain", value: domain},
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			list, err := client.Domains().List(listOptionsFromFlags(filter, orderBy, descending, pageSize))
			if err != nil {
				return err
			}

			entities, err := list.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to list domains: %w", err)
			}

			return renderEntityList(ctx, entities,
				[]string{"domain", "type", "status", "soa_email"}, "domains")
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "filter by domain name")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "sort by field")
	cmd.Flags().BoolVar(&descending, "desc", false, "sort descending")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page")

	return cmd
}

func newDomainsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DOMAIN_ID",
		Short: "Show one domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			domain, err := client.Domains().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get domain: %w", err)
			}

			return renderEntity(ctx, domain,
				[]string{"domain", "type", "status", "soa_email", "description", "ttl_sec", "tags"})
		},
	}
}

func newDomainsCreateCommand() *cobra.Command {
	var (
		domain     string
		domainType string
		soaEmail   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			if domain == "" {
				return ErrDomainIDRequired
			}

			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			fields := map[string]any{
				"domain": domain,
				"type":   domainType,
			}
			if soaEmail != "" {
				fields["soa_email"] = soaEmail
			}

			ctx := cmd.Context()

			created, err := client.Domains().Create(ctx, fields)
			if err != nil {
				return fmt.Errorf("failed to create domain: %w", err)
			}

			fmt.Printf("Created domain %s\n", created.ID())

			return renderEntity(ctx, created, []string{"domain", "type", "status"})
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "domain name (required)")
	cmd.Flags().StringVar(&domainType, "type", "master", "zone type (master or slave)")
	cmd.Flags().StringVar(&soaEmail, "soa-email", "", "SOA contact (required for master zones)")

	return cmd
}

func newDomainsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DOMAIN_ID",
		Short: "Delete a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			domain, err := client.Domains().Handle(args[0])
			if err != nil {
				return err
			}

			if err := domain.Delete(cmd.Context()); err != nil {
				return fmt.Errorf("failed to delete domain: %w", err)
			}

			fmt.Printf("Deleted domain %s\n", args[0])

			return nil
		},
	}
}

func newDomainsRecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"record"},
		Short:   "Manage a domain's records",
	}

	cmd.AddCommand(newRecordsListCommand())
	cmd.AddCommand(newRecordsCreateCommand())
	cmd.AddCommand(newRecordsUpdateCommand())
	cmd.AddCommand(newRecordsDeleteCommand())

	return cmd
}

func newRecordsListCommand() *cobra.Command {
	var domainID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a domain's records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if domainID == "" {
				return ErrDomainIDRequired
			}

			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			list, err := client.Domains().Records().List(domainID, nil)
			if err != nil {
				return err
			}

			entities, err := list.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			return renderEntityList(ctx, entities,
				[]string{"type", "name", "target", "ttl_sec"}, "records")
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "owning domain id (required)")

	return cmd
}

func newRecordsCreateCommand() *cobra.Command {
	var (
		domainID   string
		recordType string
		name       string
		target     string
		ttl        int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a record to a domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			if domainID == "" {
				return ErrDomainIDRequired
			}

			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			fields := map[string]any{
				"type":   recordType,
				"name":   name,
				"target": target,
			}
			if ttl != 0 {
				fields["ttl_sec"] = ttl
			}

			ctx := cmd.Context()

			record, err := client.Domains().Records().Create(ctx, domainID, fields)
			if err != nil {
				return fmt.Errorf("failed to create record: %w", err)
			}

			fmt.Printf("Created record %s\n", record.ID())

			return renderEntity(ctx, record, []string{"type", "name", "target", "ttl_sec"})
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "owning domain id (required)")
	cmd.Flags().StringVar(&recordType, "type", "A", "record type (A, AAAA, CNAME, MX, TXT, ...)")
	cmd.Flags().StringVar(&name, "name", "", "record name")
	cmd.Flags().StringVar(&target, "target", "", "record target")
	cmd.Flags().IntVar(&ttl, "ttl", 0, "time to live in seconds")

	return cmd
}

func newRecordsUpdateCommand() *cobra.Command {
	var (
		domainID string
		name     string
		target   string
		ttl      int
	)

	cmd := &cobra.Command{
		Use:   "update RECORD_ID",
		Short: "Update a record",
		Long:  "Update mutable record fields; only the changed fields are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if domainID == "" {
				return ErrDomainIDRequired
			}

			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			record, err := client.Domains().Records().Handle(args[0], domainID)
			if err != nil {
				return err
			}

			if name != "" {
				if err := record.Set("name", name); err != nil {
					return err
				}
			}

			if target != "" {
				if err := record.Set("target", target); err != nil {
					return err
				}
			}

			if ttl != 0 {
				if err := record.Set("ttl_sec", float64(ttl)); err != nil {
					return err
				}
			}

			if err := record.Save(cmd.Context()); err != nil {
				return fmt.Errorf("failed to update record: %w", err)
			}

			fmt.Printf("Updated record %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "owning domain id (required)")
	cmd.Flags().StringVar(&name, "name", "", "new record name")
	cmd.Flags().StringVar(&target, "target", "", "new record target")
	cmd.Flags().IntVar(&ttl, "ttl", 0, "new time to live in seconds")

	return cmd
}

func newRecordsDeleteCommand() *cobra.Command {
	var domainID string

	cmd := &cobra.Command{
		Use:   "delete RECORD_ID",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if domainID == "" {
				return ErrDomainIDRequired
			}

			client, err := CreateClient(true)
			if err != nil {
				return err
			}

			record, err := client.Domains().Records().Handle(args[0], domainID)
			if err != nil {
				return err
			}

			if err := record.Delete(cmd.Context()); err != nil {
				return fmt.Errorf("failed to delete record: %w", err)
			}

			fmt.Printf("Deleted record %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "owning domain id (required)")

	return cmd
}
