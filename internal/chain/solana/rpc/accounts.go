package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

// Commitment levels accepted by the node.
const (
	CommitmentProcessed = "processed"
	CommitmentConfirmed = "confirmed"
	CommitmentFinalized = "finalized"
)

// MemcmpFilter matches accounts whose data at Offset equals Bytes.
type MemcmpFilter struct {
	Offset uint64
	Bytes  []byte
}

// ProgramAccountsConfig narrows a getProgramAccounts query.
type ProgramAccountsConfig struct {
	Commitment string
	DataSize   uint64
	Memcmp     []MemcmpFilter
}

// KeyedAccount is a program account with decoded binary data.
type KeyedAccount struct {
	Pubkey   string
	Lamports uint64
	Owner    string
	Data     []byte
}

type accountJSON struct {
	Lamports   uint64          `json:"lamports"`
	Owner      string          `json:"owner"`
	Data       json.RawMessage `json:"data"`
	Executable bool            `json:"executable"`
}

type keyedAccountJSON struct {
	Pubkey  string      `json:"pubkey"`
	Account accountJSON `json:"account"`
}

// GetProgramAccounts returns every account owned by programID, base64 decoded.
func (c *Client) GetProgramAccounts(ctx context.Context, programID string, cfg ProgramAccountsConfig) ([]KeyedAccount, error) {
	params := map[string]any{
		"encoding": "base64",
	}
	if cfg.Commitment != "" {
		params["commitment"] = cfg.Commitment
	}

	var filters []any
	if cfg.DataSize > 0 {
		filters = append(filters, map[string]any{"dataSize": cfg.DataSize})
	}
	for _, m := range cfg.Memcmp {
		filters = append(filters, map[string]any{
			"memcmp": map[string]any{
				"offset":   m.Offset,
				"bytes":    base64.StdEncoding.EncodeToString(m.Bytes),
				"encoding": "base64",
			},
		})
	}
	if len(filters) > 0 {
		params["filters"] = filters
	}

	result, err := c.Call(ctx, "getProgramAccounts", programID, params)
	if err != nil {
		return nil, err
	}

	var raw []keyedAccountJSON
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, sverr.WithCause(ErrRPCResponse, fmt.Errorf("parsing program accounts: %w", err))
	}

	accounts := make([]KeyedAccount, 0, len(raw))
	for _, r := range raw {
		data, err := decodeBase64Data(r.Account.Data)
		if err != nil {
			return nil, sverr.WithDetails(sverr.WithCause(ErrRPCResponse, err), map[string]string{"account": r.Pubkey})
		}
		accounts = append(accounts, KeyedAccount{
			Pubkey:   r.Pubkey,
			Lamports: r.Account.Lamports,
			Owner:    r.Account.Owner,
			Data:     data,
		})
	}
	return accounts, nil
}

// decodeBase64Data decodes the ["<payload>", "base64"] data tuple.
func decodeBase64Data(raw json.RawMessage) ([]byte, error) {
	var tuple []string
	if err := json.Unmarshal(raw, &tuple); err != nil {
		return nil, fmt.Errorf("parsing account data: %w", err)
	}
	if len(tuple) != 2 || tuple[1] != "base64" {
		return nil, fmt.Errorf("unexpected account data encoding %v", tuple)
	}
	return base64.StdEncoding.DecodeString(tuple[0])
}

// ParsedTokenAccount is a token account returned with jsonParsed encoding.
type ParsedTokenAccount struct {
	Pubkey   string
	Mint     string
	Owner    string
	Amount   string
	Decimals int
}

type tokenAccountsJSON struct {
	Value []struct {
		Pubkey  string `json:"pubkey"`
		Account struct {
			Data struct {
				Parsed struct {
					Info struct {
						Mint        string `json:"mint"`
						Owner       string `json:"owner"`
						TokenAmount struct {
							Amount   string `json:"amount"`
							Decimals int    `json:"decimals"`
						} `json:"tokenAmount"`
					} `json:"info"`
				} `json:"parsed"`
			} `json:"data"`
		} `json:"account"`
	} `json:"value"`
}

// GetTokenAccountsByOwner lists owner's token accounts under tokenProgramID.
func (c *Client) GetTokenAccountsByOwner(ctx context.Context, owner, tokenProgramID string) ([]ParsedTokenAccount, error) {
	result, err := c.Call(ctx, "getTokenAccountsByOwner",
		owner,
		map[string]any{"programId": tokenProgramID},
		map[string]any{"encoding": "jsonParsed"},
	)
	if err != nil {
		return nil, err
	}

	var raw tokenAccountsJSON
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, sverr.WithCause(ErrRPCResponse, fmt.Errorf("parsing token accounts: %w", err))
	}

	accounts := make([]ParsedTokenAccount, 0, len(raw.Value))
	for _, v := range raw.Value {
		info := v.Account.Data.Parsed.Info
		accounts = append(accounts, ParsedTokenAccount{
			Pubkey:   v.Pubkey,
			Mint:     info.Mint,
			Owner:    info.Owner,
			Amount:   info.TokenAmount.Amount,
			Decimals: info.TokenAmount.Decimals,
		})
	}
	return accounts, nil
}
