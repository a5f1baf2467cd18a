package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tournevent/otpravka/pkg/otpravka"
	"go.uber.org/zap"
)

var tariffCmd = &cobra.Command{
	Use:   "tariff",
	Short: "Calculate the delivery cost of a shipment",
	Args:  cobra.NoArgs,
	RunE:  runTariff,
}

var postOfficeCmd = &cobra.Command{
	Use:   "postoffice",
	Short: "Look up post offices",
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Manage backlog orders",
}

var batchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "Manage shipment batches",
}

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Download batch documents",
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show API request usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := current.client.UsageStats(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(stats)
	},
}

func init() {
	f := tariffCmd.Flags()
	f.Int("from", 0, "origin postal index")
	f.Int("to", 0, "destination postal index")
	f.String("category", string(otpravka.CategoryOrdinary), "mail category")
	f.String("type", string(otpravka.MailPostalParcel), "mail type")
	f.Int("mass", 0, "mass in grams")
	f.Bool("fragile", false, "fragile shipment")
	f.Bool("order-of-notice", false, "with order of notice")
	f.Bool("simple-notice", false, "with simple notice")
	f.Int64("declared-value", 0, "declared value in kopecks")

	initPostOfficeCommands()
	initOrderCommands()
	initBatchCommands()
	initFormCommands()
}

func runTariff(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	from, _ := f.GetInt("from")
	to, _ := f.GetInt("to")
	category, _ := f.GetString("category")
	mailType, _ := f.GetString("type")
	mass, _ := f.GetInt("mass")
	fragile, _ := f.GetBool("fragile")
	orderNotice, _ := f.GetBool("order-of-notice")
	simpleNotice, _ := f.GetBool("simple-notice")
	declared, _ := f.GetInt64("declared-value")

	quote, err := current.client.CalculateTariff(cmd.Context(), otpravka.TariffRequest{
		IndexFrom:         from,
		IndexTo:           to,
		MailCategory:      otpravka.MailCategory(category),
		MailType:          otpravka.MailType(mailType),
		Mass:              mass,
		Fragile:           fragile,
		WithOrderOfNotice: orderNotice,
		WithSimpleNotice:  simpleNotice,
		WithDeclaredValue: declared > 0,
		DeclaredValue:     declared,
	})
	if err != nil {
		return err
	}
	return printJSON(quote)
}

func initPostOfficeCommands() {
	byIndex := &cobra.Command{
		Use:   "index <postal-index>",
		Short: "Find the office with a postal index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offices, err := current.client.SearchPostOfficesByIndex(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(offices)
		},
	}

	byAddress := &cobra.Command{
		Use:   "address <address>",
		Short: "Find offices serving an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			top, _ := cmd.Flags().GetInt("top")
			offices, err := current.client.SearchPostOfficesByAddress(cmd.Context(), otpravka.PostOfficeAddressQuery{
				Address: args[0],
				Top:     top,
			})
			if err != nil {
				return err
			}
			return printJSON(offices)
		},
	}
	byAddress.Flags().Int("top", 10, "maximum number of offices")

	nearby := &cobra.Command{
		Use:   "nearby",
		Short: "Find offices around a point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			lat, _ := f.GetFloat64("lat")
			lon, _ := f.GetFloat64("lon")
			radius, _ := f.GetInt("radius")
			filter, _ := f.GetString("filter")
			offices, err := current.client.SearchPostOfficesByCoordinates(cmd.Context(), otpravka.PostOfficeCoordinatesQuery{
				Latitude:  lat,
				Longitude: lon,
				Radius:    radius,
				Filter:    filter,
			})
			if err != nil {
				return err
			}
			return printJSON(offices)
		},
	}
	nearby.Flags().Float64("lat", 0, "latitude")
	nearby.Flags().Float64("lon", 0, "longitude")
	nearby.Flags().Int("radius", 1000, "search radius in meters")
	nearby.Flags().String("filter", "ALL", "office category filter")
	_ = nearby.MarkFlagRequired("lat")
	_ = nearby.MarkFlagRequired("lon")

	list := &cobra.Command{
		Use:   "list",
		Short: "List post offices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			top, _ := cmd.Flags().GetInt("top")
			offices, err := current.client.ListPostOffices(cmd.Context(), top)
			if err != nil {
				return err
			}
			return printJSON(offices)
		},
	}
	list.Flags().Int("top", 100, "maximum number of offices")

	postOfficeCmd.AddCommand(byIndex, byAddress, nearby, list)
}

func initOrderCommands() {
	list := &cobra.Command{
		Use:   "list",
		Short: "List backlog orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := current.client.ListOrders(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(orders)
		},
	}

	get := &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := current.client.GetOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(order)
		},
	}

	del := &cobra.Command{
		Use:   "delete <order-id>",
		Short: "Delete an order from the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return current.client.DeleteOrder(cmd.Context(), args[0])
		},
	}

	toBacklog := &cobra.Command{
		Use:   "to-backlog <order-id>",
		Short: "Return an order from its batch to the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return current.client.MoveOrderToBacklog(cmd.Context(), args[0])
		},
	}

	ordersCmd.AddCommand(list, get, del, toBacklog)
}

func initBatchCommands() {
	list := &cobra.Command{
		Use:   "list",
		Short: "List batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			batches, err := current.client.ListBatches(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(batches)
		},
	}

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Find batches by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batches, err := current.client.SearchBatches(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(batches)
		},
	}

	orders := &cobra.Command{
		Use:   "orders <batch-id>",
		Short: "List orders in a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := current.client.ListBatchOrders(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(orders)
		},
	}

	batchesCmd.AddCommand(list, search, orders)
}

type fetchDocument func(cmd *cobra.Command, c *otpravka.Client, batchID string) ([]byte, error)

func initFormCommands() {
	documents := []struct {
		use   string
		short string
		fetch fetchDocument
	}{
		{"zip <batch-id>", "Download all batch documents as a ZIP archive",
			func(cmd *cobra.Command, c *otpravka.Client, id string) ([]byte, error) {
				return c.GenerateDocuments(cmd.Context(), id)
			}},
		{"f103 <batch-id>", "Download the F103 batch list",
			func(cmd *cobra.Command, c *otpravka.Client, id string) ([]byte, error) {
				printType, _ := cmd.Flags().GetString("print-type")
				return c.GenerateF103(cmd.Context(), id, otpravka.PrintType(printType))
			}},
		{"f7p <batch-id>", "Download F7p address labels",
			func(cmd *cobra.Command, c *otpravka.Client, id string) ([]byte, error) {
				return c.GenerateF7P(cmd.Context(), id)
			}},
		{"f112 <batch-id>", "Download F112 cash-on-delivery forms",
			func(cmd *cobra.Command, c *otpravka.Client, id string) ([]byte, error) {
				return c.GenerateF112(cmd.Context(), id)
			}},
	}

	for _, d := range documents {
		fetch := d.fetch
		sub := &cobra.Command{
			Use:   d.use,
			Short: d.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := fetch(cmd, current.client, args[0])
				if err != nil {
					return err
				}
				return writeDocument(cmd, data)
			},
		}
		sub.Flags().StringP("out", "o", "", "output file (stdout when empty)")
		if sub.Name() == "f103" {
			sub.Flags().String("print-type", string(otpravka.PrintPaper), "PAPER or ELECTRONIC")
		}
		formsCmd.AddCommand(sub)
	}
}

func writeDocument(cmd *cobra.Command, data []byte) error {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		_, err := current.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	current.logger.Info("Document saved", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
