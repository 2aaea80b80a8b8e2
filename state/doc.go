// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state is the revertable view of the ledger's key/value store used by one operation.
// It follows the flow as bellow:
//
//	          o
//	          |
//	 [ revertable state ]
//	          |
//	   [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ kv bulk ]
//	          |
//	  [ read-only kv store ]
//
// Nothing reaches the store until the staged changes are committed through a single bulk write,
// so an operation that fails part way leaves the store untouched.
package state
